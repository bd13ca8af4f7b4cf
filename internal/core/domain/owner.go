package domain

import "fmt"

// OwnerType discriminates which kind of entity holds a sub-ledger account.
type OwnerType string

const (
	OwnerUser  OwnerType = "USER"
	OwnerGroup OwnerType = "GROUP"
)

// Owner identifies an account holder as a tagged variant so that account
// handling can switch exhaustively on the owner kind instead of carrying a
// loosely-typed (type, id) pair around.
type Owner struct {
	Type OwnerType `json:"ownerType"`
	ID   string    `json:"ownerID"`
}

// UserOwner builds the Owner variant for a member account.
func UserOwner(userID string) Owner {
	return Owner{Type: OwnerUser, ID: userID}
}

// GroupOwner builds the Owner variant for a group account.
func GroupOwner(groupID string) Owner {
	return Owner{Type: OwnerGroup, ID: groupID}
}

func (o Owner) String() string {
	return fmt.Sprintf("%s/%s", o.Type, o.ID)
}
