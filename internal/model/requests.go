package model

type Credentials struct {
	Login      string `json:"login"`
	Password   string `json:"password"`
	ReferredBy string `json:"referred_by,omitempty"`
}

type CreateOrderRequest struct {
	ServiceID int    `json:"service_id"`
	Quantity  int    `json:"quantity"`
	Link      string `json:"link"`
	AgentCode string `json:"agent_code,omitempty"`
}

type CreateDepositRequest struct {
	Amount        int64  `json:"amount"`
	DepositorName string `json:"depositor_name"`
	Memo          string `json:"memo,omitempty"`
}

type ResolveDepositRequest struct {
	Action DepositAction `json:"action"`
	Note   string        `json:"note,omitempty"`
}
