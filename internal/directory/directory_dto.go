package directory

type FacultySuggestion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
