package metadomain

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// Cursor é o estado de paginação consumido pelo fetcher. Token é o cursor
// opaco "after" da última página lida; vazio no início da varredura.
type Cursor struct {
	Token   string
	HasNext bool
}

// NextCursor deriva o cursor da página seguinte a partir do envelope de
// paging retornado pela API. A Graph API omite "next" na última página.
func (p Paging) NextCursor() Cursor {
	return Cursor{
		Token:   p.Cursors.After,
		HasNext: p.Next != "",
	}
}
