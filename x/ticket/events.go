package ticket

import (
	"strconv"
	"strings"

	"github.com/goldtix/registry"
)

// Event types emitted by the ticket controller.
const (
	EventTransfer       = "Transfer"
	EventApproval       = "Approval"
	EventApprovalForAll = "ApprovalForAll"
	EventIssue          = "Issue"
	EventTransferBatch  = "TransferBatch"
)

func transferEvent(from, to registry.Address, id int64) registry.Event {
	return registry.Event{
		Type: EventTransfer,
		Attributes: map[string]string{
			"from":      from.String(),
			"to":        to.String(),
			"ticket_id": strconv.FormatInt(id, 10),
		},
	}
}

func approvalEvent(owner, approved registry.Address, id int64) registry.Event {
	return registry.Event{
		Type: EventApproval,
		Attributes: map[string]string{
			"owner":     owner.String(),
			"approved":  approved.String(),
			"ticket_id": strconv.FormatInt(id, 10),
		},
	}
}

func approvalForAllEvent(owner, operator registry.Address, approved bool) registry.Event {
	return registry.Event{
		Type: EventApprovalForAll,
		Attributes: map[string]string{
			"owner":    owner.String(),
			"operator": operator.String(),
			"approved": strconv.FormatBool(approved),
		},
	}
}

func issueEvent(owner registry.Address, id int64, name string) registry.Event {
	return registry.Event{
		Type: EventIssue,
		Attributes: map[string]string{
			"owner":     owner.String(),
			"ticket_id": strconv.FormatInt(id, 10),
			"name":      name,
		},
	}
}

func transferBatchEvent(from, to registry.Address, ids []int64) registry.Event {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return registry.Event{
		Type: EventTransferBatch,
		Attributes: map[string]string{
			"from":       from.String(),
			"to":         to.String(),
			"ticket_ids": strings.Join(parts, ","),
		},
	}
}
