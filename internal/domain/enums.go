package domain

const (
	StrictnessStrict   = "strict"
	StrictnessFlexible = "flexible"
)

// ParseStrictness maps the snapshot/CLI vocabulary onto the Strict flag.
// "yes"/"no" are accepted for compatibility with older exports.
func ParseStrictness(s string) (strict bool, ok bool) {
	switch s {
	case StrictnessStrict, "hard", "yes", "true":
		return true, true
	case StrictnessFlexible, "soft", "no", "false":
		return false, true
	}
	return false, false
}

type RescheduleTrigger string

const (
	TriggerManual          RescheduleTrigger = "MANUAL"
	TriggerWorkItemChanged RescheduleTrigger = "WORK_ITEM_CHANGED"
	TriggerProgressLogged  RescheduleTrigger = "PROGRESS_LOGGED"
	TriggerEventChanged    RescheduleTrigger = "EVENT_CHANGED"
	TriggerImport          RescheduleTrigger = "IMPORT"
)
