package activity

import "time"

// Action names a kind of audited mutation.
type Action string

const (
	ActionLogin  Action = "login"
	ActionLogout Action = "logout"

	ActionRecordCreated  Action = "record.created"
	ActionRecordUpdated  Action = "record.updated"
	ActionRecordDeleted  Action = "record.deleted"
	ActionRecordsArchive Action = "records.archived"

	ActionEmployeeCreated    Action = "employee.created"
	ActionEmployeeUpdated    Action = "employee.updated"
	ActionEmployeeTerminated Action = "employee.terminated"

	ActionRecurringCreated Action = "recurring_deduction.created"
	ActionRecurringUpdated Action = "recurring_deduction.updated"
	ActionRecurringDeleted Action = "recurring_deduction.deleted"

	ActionPolicyCreated  Action = "insurance_policy.created"
	ActionPolicyUpdated  Action = "insurance_policy.updated"
	ActionPolicyDeleted  Action = "insurance_policy.deleted"
	ActionPaymentAdded   Action = "policy_payment.created"
	ActionPaymentDeleted Action = "policy_payment.deleted"

	ActionMaternityCreated Action = "maternity_record.created"
	ActionMaternityUpdated Action = "maternity_record.updated"
	ActionMaternityDeleted Action = "maternity_record.deleted"

	ActionExportRecorded Action = "export.recorded"

	ActionUserCreated     Action = "user.created"
	ActionUserUpdated     Action = "user.updated"
	ActionUserDeactivated Action = "user.deactivated"
)

// Entry is one append-only audit line.
type Entry struct {
	ID        int64
	UserID    *int64
	Action    Action
	Details   string
	CreatedAt time.Time

	// Joined fields
	Username *string
}
