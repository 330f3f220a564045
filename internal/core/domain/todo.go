package domain

// TodoItem is an entry of the demo to-do list.
type TodoItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}
