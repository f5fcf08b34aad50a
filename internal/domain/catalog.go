package domain

// Course layout of the Individualbesteuerung campaign: five modules, the
// last one carrying the two custom quiz games at 50 points each.
const (
	ModuleGrundlagen   = "grundlagen"
	ModuleSteuersystem = "steuersystem"
	ModuleProContra    = "pro-contra"
	ModuleVertiefung   = "vertiefung"
	ModuleSpielerisch  = "spielerisch-lernen"

	ActivityFlashcardQuiz = "wissensquiz"
	ActivityTieredQuiz    = "millionenspiel"
)

// DefaultCatalog returns the fixed module catalog. Weights per module sum to
// the module's max points (100 everywhere in this course).
func DefaultCatalog() Catalog {
	return Catalog{Modules: []Module{
		{
			ID:    ModuleGrundlagen,
			Title: "Grundlagen der Individualbesteuerung",
			Activities: []Activity{
				{ID: "einstieg", Kind: ActivityH5P, Weight: 50},
				{ID: "begriffe", Kind: ActivityH5P, Weight: 50},
			},
		},
		{
			ID:    ModuleSteuersystem,
			Title: "Das Schweizer Steuersystem",
			Activities: []Activity{
				{ID: "steuerarten", Kind: ActivityH5P, Weight: 50},
				{ID: "progression", Kind: ActivityH5P, Weight: 50},
			},
		},
		{
			ID:    ModuleProContra,
			Title: "Pro und Contra",
			Activities: []Activity{
				{ID: "pro-video", Kind: ActivityH5P, Weight: 50},
				{ID: "contra-video", Kind: ActivityH5P, Weight: 50},
			},
		},
		{
			ID:    ModuleVertiefung,
			Title: "Vertiefung",
			Activities: []Activity{
				{ID: "fallbeispiele", Kind: ActivityH5P, Weight: 50},
				{ID: "abstimmungsfrage", Kind: ActivityH5P, Weight: 50},
			},
		},
		{
			ID:    ModuleSpielerisch,
			Title: "Spielerisch lernen",
			Activities: []Activity{
				{ID: ActivityFlashcardQuiz, Kind: ActivityFlashcard, Weight: 50},
				{ID: ActivityTieredQuiz, Kind: ActivityTiered, Weight: 50},
			},
		},
	}}
}

// ZeroPrizeLabel is shown when a player fails before reaching any safe haven.
const ZeroPrizeLabel = "0 Punkte"

// DefaultPrizeLadder returns the seven-rung ladder with safe havens at rungs
// 3, 5 and 7.
func DefaultPrizeLadder() []PrizeLevel {
	return []PrizeLevel{
		{Label: "100 Punkte"},
		{Label: "200 Punkte"},
		{Label: "300 Punkte", SafeHaven: true},
		{Label: "500 Punkte"},
		{Label: "1'000 Punkte", SafeHaven: true},
		{Label: "10'000 Punkte"},
		{Label: "1 Million Punkte", SafeHaven: true},
	}
}
