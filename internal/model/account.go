package model

// Account is a bank account declared in spendsight.yaml.
type Account struct {
	ID          string
	Name        string
	Institution string // schema ID of the bank export, e.g. "chase"
	LastFour    string
}

// AccountInfo holds the partial account fields an import can infer.
type AccountInfo struct {
	AccountID   string
	Institution string
	Name        string
}
