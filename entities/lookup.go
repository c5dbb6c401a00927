package entities

import "strings"

// LookupQuery searches tickets by buyer Name when set, otherwise by QR Token.
type LookupQuery struct {
	Token string `query:"q"`
	Name  string `query:"name"`
}

func (q LookupQuery) String() string {
	if q.Name != "" {
		return q.Name
	}
	return q.Token
}

// PickSingle resolves the candidates of a lookup to exactly one ticket. A token
// equal to the query wins over partial matches.
func (q LookupQuery) PickSingle(candidates []Ticket) (Ticket, error) {
	if q.Name == "" {
		for _, c := range candidates {
			if strings.EqualFold(c.QRToken, strings.TrimSpace(q.Token)) {
				return c, nil
			}
		}
	}

	switch len(candidates) {
	case 0:
		return Ticket{}, ErrNotFound
	case 1:
		return candidates[0], nil
	default:
		return Ticket{}, &AmbiguousLookupError{Query: q.String(), Candidates: candidates}
	}
}
