package models

// Sport представляет вид спорта из статического каталога.
type Sport struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Каталог задаётся один раз при старте и никогда не меняется.
// Порядок элементов определяет порядок кнопок на главной странице.
var sportCatalog = [...]Sport{
	{ID: "soccer", Name: "Soccer ⚽"},
	{ID: "basketball", Name: "Basketball 🏀"},
}

// Sports возвращает копию каталога видов спорта.
func Sports() []Sport {
	sports := make([]Sport, len(sportCatalog))
	copy(sports, sportCatalog[:])
	return sports
}

// FindSport ищет вид спорта по идентификатору.
func FindSport(id string) (Sport, bool) {
	for _, s := range sportCatalog {
		if s.ID == id {
			return s, true
		}
	}
	return Sport{}, false
}
