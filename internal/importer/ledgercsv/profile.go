package ledgercsv

// Profile describes the column layout of a ledger CSV file.
type Profile struct {
	Name      string
	PeriodCol string
	AmountCol string
	DueCol    string
	StatusCol string
	PaidCol   string
	MethodCol string
	TxCol     string
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.PeriodCol, p.AmountCol, p.DueCol, p.StatusCol}
}

// profiles is the ordered list of layouts tried during auto-detection.
var profiles = []Profile{
	{
		// Semicolon export of the history workbook.
		Name:      "historique",
		PeriodCol: "Période",
		AmountCol: "Montant (GNF)",
		DueCol:    "Date limite",
		StatusCol: "Statut",
		PaidCol:   "Date paiement",
		MethodCol: "Moyen de paiement",
		TxCol:     "N° de transaction",
	},
	{
		Name:      "seed",
		PeriodCol: "period",
		AmountCol: "amount_due",
		DueCol:    "due_date",
		StatusCol: "status",
		PaidCol:   "paid_date",
		MethodCol: "method",
		TxCol:     "transaction_id",
	},
}
