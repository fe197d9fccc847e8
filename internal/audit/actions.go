package audit

type Action string

const (
	ActionStatusChanged Action = "STATUS_CHANGED"
	ActionAnnotated     Action = "ANNOTATED"
	ActionDeleted       Action = "DELETED"
	ActionAmountSet     Action = "AMOUNT_SET"
)
