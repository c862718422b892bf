package cache

import "context"

// Noop is used when Redis is disabled. Every read is a miss.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, interface{}) error         { return nil }
func (Noop) Delete(context.Context, ...string) error                { return nil }
func (Noop) DeletePattern(context.Context, string) error            { return nil }
