package documents

import (
	"bytes"
	"testing"
	"time"

	"etude/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogue(t *testing.T) {
	c := NewCatalogue()

	assert.Equal(t, []string{"achat", "contrat-mariage", "donation", "pacs", "succession", "vente"}, c.IDs())

	list := c.List()
	require.Len(t, list, 6)
	assert.Equal(t, "succession", list[0].ID)

	for _, s := range list {
		cl, err := c.Get(s.ID)
		require.NoError(t, err)
		require.NotEmpty(t, cl.Items)
		assert.True(t, cl.Items[0].Header, "%s starts with a section header", s.ID)
		assert.Equal(t, s.Count, countItems(cl.Items))
		assert.Positive(t, s.Count)
	}

	_, err := c.Get("testament")
	assert.ErrorIs(t, err, ErrChecklistNotFound)
}

func TestCatalogue_GetReturnsCopy(t *testing.T) {
	c := NewCatalogue()
	cl, err := c.Get("pacs")
	require.NoError(t, err)
	cl.Items[0].Text = "changed"

	again, err := c.Get("pacs")
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again.Items[0].Text)
}

func person() Person {
	return Person{
		Civility:    "Mme",
		LastName:    "Martin",
		BirthName:   "Durand",
		FirstNames:  "Jeanne Marie",
		BirthDate:   "1982-03-14",
		BirthPlace:  "Annecy",
		Nationality: "Française",
	}
}

func fiche() FicheInput {
	return FicheInput{
		Client:        person(),
		Address:       "3 place de l'Église",
		PostalCode:    "74000",
		City:          "Annecy",
		Email:         "jeanne@example.fr",
		MaritalStatus: Single,
	}
}

func TestFicheInput_Validate(t *testing.T) {
	assert.Nil(t, fiche().Validate())

	in := fiche()
	in.Client.BirthDate = "14/03/1982"
	in.PostalCode = "7400"
	in.MaritalStatus = "fiance"
	fields := in.Validate()
	assert.Contains(t, fields, "client.birth_date")
	assert.Contains(t, fields, "postal_code")
	assert.Contains(t, fields, "marital_status")

	in = fiche()
	in.MaritalStatus = Married
	assert.Equal(t, map[string]string{"spouse": "is required"}, in.Validate())

	spouse := person()
	spouse.FirstNames = ""
	in.Spouse = &spouse
	assert.Equal(t, map[string]string{"spouse.first_names": "is required"}, in.Validate())

	spouse.FirstNames = "Paul"
	assert.Nil(t, in.Validate())
}

func TestPerson_FullName(t *testing.T) {
	assert.Equal(t, "Mme MARTIN Jeanne Marie née DURAND", person().fullName())
	p := person()
	p.BirthName = "martin"
	assert.Equal(t, "Mme MARTIN Jeanne Marie", p.fullName())
}

func newTestRenderer() *Renderer {
	r := NewRenderer(config.Office{
		Name:    "Étude de Maître Dupont",
		Address: "1 rue du Lac, 74000 Annecy",
		Phone:   "04 50 00 00 00",
		Email:   "contact@etude.fr",
	})
	r.now = func() time.Time { return time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC) }
	return r
}

func TestRenderer_Checklist(t *testing.T) {
	cl, err := NewCatalogue().Get("succession")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, newTestRenderer().Checklist(&buf, cl))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestRenderer_Fiche(t *testing.T) {
	in := fiche()
	in.MaritalStatus = Pacsed
	in.UnionDate = "2015-06-20"
	in.Regime = "indivision"
	spouse := person()
	spouse.Civility = "M"
	spouse.BirthName = ""
	in.Spouse = &spouse
	in.Notes = "Projet d'achat d'une maison à Sévrier."
	require.Nil(t, in.Validate())

	var buf bytes.Buffer
	require.NoError(t, newTestRenderer().Fiche(&buf, in))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestFrenchDate(t *testing.T) {
	assert.Equal(t, "14/03/1982", frenchDate("1982-03-14"))
	assert.Equal(t, "bientôt", frenchDate("bientôt"))
}
