package types

// Trip is a user-defined fishing outing and the parent of catches.
type Trip struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"` // optional calendar date, YYYY-MM-DD
	Location  string `json:"location"`
	Desc      string `json:"desc"`
	FlyWin    string `json:"flyWin"` // recap: the fly that won the day
	Lessons   string `json:"lessons"`
	Recap     string `json:"recap"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}
