package domain

// Book is a catalog entry. The catalog is read-only for this service;
// rows are seeded externally (see scripts/seedbooks.go).
type Book struct {
	ID     int64
	ISBN   string
	Title  string
	Author string
	Year   int
}
