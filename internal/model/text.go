package model

// Enums marshal as their display names so JSON output stays readable.

func (r Rank) MarshalText() ([]byte, error)        { return []byte(r.String()), nil }
func (t QuestType) MarshalText() ([]byte, error)   { return []byte(t.String()), nil }
func (s QuestStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s Season) MarshalText() ([]byte, error)      { return []byte(s.String()), nil }
