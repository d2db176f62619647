package models

// AutoAcceptComment is attached to every transfer accepted by this client
const AutoAcceptComment = "Automatically accepted by udata-cli"

// Reference points at a remote object by API class and ID
type Reference struct {
	Class string `json:"class"`
	ID    string `json:"id"`
}

// TransferRequest is the body of POST transfer/
type TransferRequest struct {
	Comment   string    `json:"comment"`
	Recipient Reference `json:"recipient"`
	Subject   Reference `json:"subject"`
}

// TransferResponse is the body of POST transfer/<id>/
type TransferResponse struct {
	Response string `json:"response"`
	Comment  string `json:"comment"`
}

// Transfer is a transfer request as returned by the API
type Transfer struct {
	ID        string    `json:"id"`
	Status    string    `json:"status,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	Recipient Reference `json:"recipient"`
	Subject   Reference `json:"subject"`
}

// NewTransferRequest builds a request moving item to recipient
func NewTransferRequest(comment string, itemType ItemType, itemID string, targetType TargetType, targetID string) TransferRequest {
	return TransferRequest{
		Comment:   comment,
		Recipient: Reference{Class: targetType.Class(), ID: targetID},
		Subject:   Reference{Class: itemType.Class(), ID: itemID},
	}
}

// AcceptResponse returns the automatic acceptance payload
func AcceptResponse() TransferResponse {
	return TransferResponse{
		Response: "accept",
		Comment:  AutoAcceptComment,
	}
}
