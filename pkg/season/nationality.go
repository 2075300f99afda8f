package season

// static constructor name -> nationality table, keyed by the exact name the
// provider reports
var teamNationalities = map[string]string{
	"Red Bull":        "Austrian",
	"Red Bull Racing": "Austrian",
	"Mercedes":        "German",
	"Ferrari":         "Italian",
	"McLaren":         "British",
	"Aston Martin":    "British",
	"Alpine":          "French",
	"Alpine F1 Team":  "French",
	"Williams":        "British",
	"AlphaTauri":      "Italian",
	"Haas F1 Team":    "American",
	"Alfa Romeo":      "Swiss",
	"RB F1 Team":      "Italian",
	"Racing Bulls":    "Italian",
	"Kick Sauber":     "Swiss",
	"Sauber":          "Swiss",
}

func teamNationality(team string) string {
	if nationality, ok := teamNationalities[team]; ok {
		return nationality
	}
	return "Unknown"
}
