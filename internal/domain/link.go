package domain

// LinkSide names the side of a link record an account occupies.
type LinkSide string

// Link sides.
const (
	LinkSideDebit  LinkSide = "debit"
	LinkSideCredit LinkSide = "credit"
)

// Link pairs a debit-side synthetic account with a credit-side one.
type Link struct {
	DebitAccountID  int32 `json:"debitAccountId"`
	CreditAccountID int32 `json:"creditAccountId"`
}

// NewLink builds the link record for an account placed on side and its peer.
func NewLink(accountID int32, side LinkSide, peerID int32) Link {
	if side == LinkSideDebit {
		return Link{DebitAccountID: accountID, CreditAccountID: peerID}
	}

	return Link{DebitAccountID: peerID, CreditAccountID: accountID}
}

// Peer returns the endpoint opposite to the account on side.
func (l Link) Peer(side LinkSide) int32 {
	if side == LinkSideDebit {
		return l.CreditAccountID
	}

	return l.DebitAccountID
}

// Touches reports whether id is either endpoint of the link.
func (l Link) Touches(id int32) bool {
	return l.DebitAccountID == id || l.CreditAccountID == id
}

// PeerField returns the input field name that carries peer ids for side.
func PeerField(side LinkSide) string {
	if side == LinkSideDebit {
		return "debitPeerIds"
	}

	return "creditPeerIds"
}

// NormalizePeers validates peer ids for accountID and drops duplicates, keeping first-seen order.
func NormalizePeers(accountID int32, side LinkSide, peerIDs []int32) ([]int32, error) {
	seen := make(map[int32]struct{}, len(peerIDs))
	result := make([]int32, 0, len(peerIDs))

	for _, id := range peerIDs {
		if id <= 0 {
			return nil, &Error{Kind: ErrInvalidLink, Entity: EntitySyntheticAccount, Field: PeerField(side), ID: id}
		}

		// Accounts not yet inserted have id 0 and cannot collide with a peer.
		if id == accountID {
			return nil, &Error{Kind: ErrInvalidLink, Entity: EntitySyntheticAccount, Field: PeerField(side), ID: id}
		}

		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		result = append(result, id)
	}

	return result, nil
}
