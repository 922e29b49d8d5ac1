package vault

// Entry is one stored credential. Secret holds the plaintext password in
// memory only; it is encrypted before it ever reaches the repository.
type Entry struct {
	ID       int
	Uid      string
	Title    string
	Username string
	Secret   string
	Website  string
	Category string
	Emoji    string
}
