// Package content serves the static educational text of the Five Pillars
// app shell. Entries are fixed at build time; there is no authoring surface.
package content

// Pillar is one educational entry.
type Pillar struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Arabic  string   `json:"arabic"`
	Summary string   `json:"summary"`
	Details []string `json:"details"`
}

type Store struct {
	pillars []Pillar
	byID    map[string]int
}

func NewStore() *Store {
	pillars := []Pillar{
		{
			ID:      "shahada",
			Name:    "Shahada",
			Arabic:  "الشهادة",
			Summary: "The declaration of faith: there is no god but God, and Muhammad is His messenger.",
			Details: []string{
				"The shahada is the profession of faith and the entry point into Islam.",
				"It is recited in every prayer and whispered to newborns and the dying.",
			},
		},
		{
			ID:      "salah",
			Name:    "Salah",
			Arabic:  "الصلاة",
			Summary: "The five daily ritual prayers performed facing the Kaaba in Mecca.",
			Details: []string{
				"Prayers are offered at dawn, midday, afternoon, sunset and night.",
				"Each prayer consists of a fixed sequence of standing, bowing and prostration.",
			},
		},
		{
			ID:      "zakat",
			Name:    "Zakat",
			Arabic:  "الزكاة",
			Summary: "The obligatory charitable payment of 2.5% of qualifying net wealth held for a lunar year.",
			Details: []string{
				"Zakat is due when net wealth meets or exceeds the nisab threshold.",
				"The nisab is classically set at 87.48 grams of gold or 612.36 grams of silver.",
				"Eligible wealth includes cash, bank balances, gold and silver, investments, business assets and money owed to you, less debts due soon.",
			},
		},
		{
			ID:      "sawm",
			Name:    "Sawm",
			Arabic:  "الصوم",
			Summary: "Fasting from dawn to sunset during the month of Ramadan.",
			Details: []string{
				"Fasting covers food, drink and marital relations during daylight hours.",
				"The sick, travelers, and others with valid excuses are exempted.",
			},
		},
		{
			ID:      "hajj",
			Name:    "Hajj",
			Arabic:  "الحج",
			Summary: "The pilgrimage to Mecca, required once in a lifetime of those able to undertake it.",
			Details: []string{
				"Hajj takes place during Dhu al-Hijjah, the final month of the Islamic calendar.",
				"Rites include circling the Kaaba, the walk between Safa and Marwa, and standing at Arafat.",
			},
		},
	}

	byID := make(map[string]int, len(pillars))
	for i, p := range pillars {
		byID[p.ID] = i
	}

	return &Store{pillars: pillars, byID: byID}
}

// Pillars returns all entries in canonical order.
func (s *Store) Pillars() []Pillar {
	return s.pillars
}

// Pillar looks up one entry by id.
func (s *Store) Pillar(id string) (Pillar, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Pillar{}, false
	}
	return s.pillars[i], true
}
