package intel

// Intelligence is the wire shape of an extraction result, shared by the
// case report and the optional reply echo.
type Intelligence struct {
	UPIIDs             []string `json:"upiIds"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	PhishingLinks      []string `json:"phishingLinks"`
	BankAccounts       []string `json:"bankAccounts"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// Intelligence converts r into its wire shape. Empty classes encode as [].
func (r Result) Intelligence() Intelligence {
	return Intelligence{
		UPIIDs:             nonNil(r.Entities[UPIIDs]),
		PhoneNumbers:       nonNil(r.Entities[PhoneNumbers]),
		PhishingLinks:      nonNil(r.Entities[PhishingLinks]),
		BankAccounts:       nonNil(r.Entities[BankAccounts]),
		SuspiciousKeywords: nonNil(r.Keywords),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
