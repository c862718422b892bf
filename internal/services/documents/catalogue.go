package documents

import (
	"errors"
	"sort"
)

var ErrChecklistNotFound = errors.New("checklist not found")

// Item is one line of a checklist. Header items open a section.
type Item struct {
	Text   string `json:"text"`
	Header bool   `json:"header,omitempty"`
}

type Checklist struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Items       []Item `json:"items"`
}

// Summary is the list form without items.
type Summary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Count       int    `json:"item_count"`
}

func header(text string) Item { return Item{Text: text, Header: true} }
func item(text string) Item { return Item{Text: text} }

var identity = []Item{
	header("Identité"),
	item("Pièce d'identité en cours de validité (carte nationale d'identité ou passeport)"),
	item("Livret de famille"),
	item("Justificatif de domicile de moins de trois mois"),
}

var checklists = []Checklist{
	{
		ID:          "succession",
		Title:       "Documents pour une succession",
		Description: "Pièces à réunir pour ouvrir le dossier de succession.",
		Items: concat(
			[]Item{
				header("Le défunt"),
				item("Acte de décès"),
				item("Livret de famille du défunt"),
				item("Contrat de mariage ou convention de PACS le cas échéant"),
				item("Testament ou donation entre époux le cas échéant"),
				item("Carte Vitale et coordonnées des caisses de retraite"),
			},
			[]Item{
				header("Les héritiers"),
				item("Pièce d'identité de chaque héritier"),
				item("Coordonnées complètes et situation matrimoniale de chaque héritier"),
			},
			[]Item{
				header("Le patrimoine"),
				item("Titres de propriété des biens immobiliers"),
				item("Relevés des comptes bancaires au jour du décès"),
				item("Contrats d'assurance-vie"),
				item("Cartes grises des véhicules"),
				item("Derniers avis d'imposition (revenus, taxe foncière)"),
			},
			[]Item{
				header("Le passif"),
				item("Factures et frais d'obsèques"),
				item("Tableaux d'amortissement des prêts en cours"),
				item("Dettes et factures impayées"),
			},
		),
	},
	{
		ID:          "donation",
		Title:       "Documents pour une donation",
		Description: "Pièces à fournir par le donateur et les donataires.",
		Items: concat(
			[]Item{
				header("Le donateur"),
				item("Pièce d'identité"),
				item("Livret de famille"),
				item("Contrat de mariage ou convention de PACS le cas échéant"),
				item("Copie des donations antérieures"),
			},
			[]Item{
				header("Les donataires"),
				item("Pièce d'identité de chaque donataire"),
				item("Justificatif de domicile"),
			},
			[]Item{
				header("Les biens donnés"),
				item("Titre de propriété du bien immobilier"),
				item("Estimation récente de la valeur des biens"),
				item("Relevé des comptes ou portefeuille de titres pour une donation de somme d'argent"),
			},
		),
	},
	{
		ID:          "vente",
		Title:       "Documents pour vendre un bien",
		Description: "Pièces demandées au vendeur pour préparer le compromis.",
		Items: concat(
			identity,
			[]Item{
				header("Le bien"),
				item("Titre de propriété"),
				item("Dernier avis de taxe foncière"),
				item("Dossier de diagnostics techniques (DPE, amiante, plomb, électricité, gaz, termites, ERP)"),
				item("Plans et descriptif du bien"),
				item("Permis de construire et déclaration d'achèvement des travaux récents"),
			},
			[]Item{
				header("Copropriété"),
				item("Règlement de copropriété et état descriptif de division"),
				item("Procès-verbaux des trois dernières assemblées générales"),
				item("Carnet d'entretien et fiche synthétique de l'immeuble"),
				item("Coordonnées du syndic"),
			},
			[]Item{
				header("Financement"),
				item("Tableau d'amortissement du prêt en cours le cas échéant"),
			},
		),
	},
	{
		ID:          "achat",
		Title:       "Documents pour acheter un bien",
		Description: "Pièces demandées à l'acquéreur.",
		Items: concat(
			identity,
			[]Item{
				header("Situation familiale"),
				item("Contrat de mariage ou convention de PACS le cas échéant"),
				item("Jugement de divorce le cas échéant"),
			},
			[]Item{
				header("Financement"),
				item("Offre de prêt ou attestation de financement"),
				item("Justificatif de l'apport personnel"),
				item("Relevé d'identité bancaire"),
			},
		),
	},
	{
		ID:          "contrat-mariage",
		Title:       "Documents pour un contrat de mariage",
		Description: "Pièces à fournir par chacun des futurs époux.",
		Items: concat(
			[]Item{
				header("Chacun des futurs époux"),
				item("Pièce d'identité"),
				item("Copie intégrale de l'acte de naissance de moins de trois mois"),
				item("Justificatif de domicile"),
				item("Profession et coordonnées de l'employeur"),
			},
			[]Item{
				header("Patrimoine"),
				item("Liste des biens propres et de leur valeur"),
				item("Titres de propriété des biens immobiliers"),
				item("Liste des dettes personnelles"),
			},
			[]Item{
				header("Le mariage"),
				item("Date et lieu prévus de la célébration"),
				item("Régime matrimonial envisagé"),
			},
		),
	},
	{
		ID:          "pacs",
		Title:       "Documents pour un PACS",
		Description: "Pièces à fournir par chacun des partenaires.",
		Items: concat(
			[]Item{
				header("Chacun des partenaires"),
				item("Pièce d'identité"),
				item("Copie intégrale de l'acte de naissance de moins de trois mois"),
				item("Justificatif de domicile commun"),
				item("Attestation sur l'honneur de non-parenté et d'absence de lien d'alliance"),
			},
			[]Item{
				header("Situation antérieure"),
				item("Livret de famille et jugement de divorce en cas d'union antérieure"),
				item("Acte de décès du précédent conjoint le cas échéant"),
			},
		),
	},
}

func concat(parts ...[]Item) []Item {
	var out []Item
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Catalogue is the fixed set of checklists, in display order.
type Catalogue struct {
	lists []Checklist
	byID  map[string]int
}

func NewCatalogue() *Catalogue {
	c := &Catalogue{lists: checklists, byID: make(map[string]int, len(checklists))}
	for idx, l := range checklists {
		c.byID[l.ID] = idx
	}
	return c
}

func (c *Catalogue) Get(id string) (Checklist, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Checklist{}, ErrChecklistNotFound
	}
	l := c.lists[idx]
	l.Items = append([]Item(nil), l.Items...)
	return l, nil
}

func (c *Catalogue) List() []Summary {
	out := make([]Summary, 0, len(c.lists))
	for _, l := range c.lists {
		out = append(out, Summary{ID: l.ID, Title: l.Title, Description: l.Description, Count: countItems(l.Items)})
	}
	return out
}

// IDs returns the checklist identifiers sorted alphabetically.
func (c *Catalogue) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func countItems(items []Item) int {
	n := 0
	for _, it := range items {
		if !it.Header {
			n++
		}
	}
	return n
}
