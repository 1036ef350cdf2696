package safety

// Rule describes one check of the read-only policy.
type Rule struct {
	ID          string // Stable identifier, e.g. "SF04"
	Name        string // Short name, e.g. "blocked-keyword"
	Description string
}

// Rule IDs.
const (
	RuleEmpty            = "SF01"
	RuleMultiStatement   = "SF02"
	RuleLeadingKeyword   = "SF03"
	RuleBlockedKeyword   = "SF04"
	RuleLockingRead      = "SF05"
	RuleBlockedFunction  = "SF06"
	RuleAmbiguousQuoting = "SF07"
	ruleInternal         = "SF00"
)

// Rules lists every check in evaluation order.
var Rules = []Rule{
	{RuleEmpty, "empty", "The text contains no statement."},
	{RuleMultiStatement, "multi-statement", "Only a single statement may be executed; a trailing semicolon is allowed."},
	{RuleLeadingKeyword, "leading-keyword", "The statement must start with one of the dialect's read keywords."},
	{RuleBlockedKeyword, "blocked-keyword", "Data-definition, data-modification and session keywords are rejected anywhere outside strings and quoted identifiers."},
	{RuleLockingRead, "locking-read", "SELECT ... FOR UPDATE and FOR SHARE take row locks."},
	{RuleBlockedFunction, "blocked-function", "Functions that touch files, the network, sessions or the server are rejected."},
	{RuleAmbiguousQuoting, "ambiguous-quoting", "Where backslash escapes depend on server settings, string literals must end in the same place either way."},
}

// LookupRule returns the rule with the given ID.
func LookupRule(id string) (Rule, bool) {
	for _, r := range Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}
