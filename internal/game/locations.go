package game

// Locations is the fixed pool a game's secret location is drawn from.
// Each entry carries the learner translation in parentheses.
var Locations = []string{
	"Beach (Пляж)",
	"Hospital (Больница)",
	"School (Школа)",
	"Restaurant (Ресторан)",
	"Airport (Аэропорт)",
	"Bank (Банк)",
	"Cinema (Кинотеатр)",
	"Office (Офис)",
	"Hotel (Отель)",
	"Supermarket (Супермаркет)",
	"Library (Библиотека)",
	"Gym (Спортзал)",
	"Park (Парк)",
	"Museum (Музей)",
	"Cafe (Кафе)",
	"Train Station (Железнодорожный вокзал)",
	"Theater (Театр)",
	"Circus (Цирк)",
	"Zoo (Зоопарк)",
	"Police Station (Полицейский участок)",
}

// IsLocation reports whether name is one of the known locations.
func IsLocation(name string) bool {
	for _, location := range Locations {
		if location == name {
			return true
		}
	}
	return false
}
