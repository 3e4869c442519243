package ticket

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goldtix/registry"
	"github.com/goldtix/registry/errors"
	"github.com/goldtix/registry/registrytest"
)

func TestMsgValidate(t *testing.T) {
	alice := registrytest.NewCondition().Address()
	bob := registrytest.NewCondition().Address()

	cases := map[string]struct {
		msg     registry.Msg
		wantErr *errors.Error
	}{
		"valid issue": {
			msg: &IssueTicketMsg{Owner: alice, Name: "GOLD TOKEN", Adn: 1, Points: 10000},
		},
		"issue without owner": {
			msg:     &IssueTicketMsg{Name: "GOLD TOKEN"},
			wantErr: errors.ErrInput,
		},
		"issue without name": {
			msg:     &IssueTicketMsg{Owner: alice},
			wantErr: errors.ErrEmpty,
		},
		"issue with a too long name": {
			msg:     &IssueTicketMsg{Owner: alice, Name: strings.Repeat("x", maxNameLength+1)},
			wantErr: errors.ErrInput,
		},
		"issue with negative points": {
			msg:     &IssueTicketMsg{Owner: alice, Name: "GOLD TOKEN", Points: -1},
			wantErr: errors.ErrInput,
		},
		"valid transfer": {
			msg: &TransferTicketMsg{From: alice, To: bob, TicketID: 1},
		},
		"transfer accepts an empty destination": {
			// the state machine rejects it, after the authorization check
			msg: &TransferTicketMsg{From: alice, TicketID: 1},
		},
		"transfer with a malformed source": {
			msg:     &TransferTicketMsg{From: []byte("short"), To: bob, TicketID: 1},
			wantErr: errors.ErrInput,
		},
		"transfer with a negative id": {
			msg:     &TransferTicketMsg{From: alice, To: bob, TicketID: -4},
			wantErr: errors.ErrInput,
		},
		"valid safe transfer": {
			msg: &SafeTransferTicketMsg{From: alice, To: bob, TicketID: 1, Data: []byte("x")},
		},
		"valid batch transfer": {
			msg: &BatchTransferTicketMsg{From: alice, To: bob, TicketIDs: []int64{1, 2}},
		},
		"batch transfer without ids": {
			msg:     &BatchTransferTicketMsg{From: alice, To: bob},
			wantErr: errors.ErrEmpty,
		},
		"valid approve": {
			msg: &ApproveTicketMsg{Delegate: bob, TicketID: 1},
		},
		"approve clearing the delegate": {
			msg: &ApproveTicketMsg{TicketID: 1},
		},
		"valid set operator": {
			msg: &SetOperatorMsg{Operator: bob, Approved: true},
		},
		"set operator without operator": {
			msg:     &SetOperatorMsg{Approved: true},
			wantErr: errors.ErrInput,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			}
		})
	}
}

func TestMsgPaths(t *testing.T) {
	paths := map[registry.Msg]string{
		&IssueTicketMsg{}:         "ticket/issue",
		&TransferTicketMsg{}:      "ticket/transfer",
		&SafeTransferTicketMsg{}:  "ticket/safe_transfer",
		&BatchTransferTicketMsg{}: "ticket/batch_transfer",
		&ApproveTicketMsg{}:       "ticket/approve",
		&SetOperatorMsg{}:         "ticket/set_operator",
	}
	for msg, want := range paths {
		assert.Equal(t, want, msg.Path())
	}
}
