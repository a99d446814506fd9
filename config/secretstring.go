package config

// SecretStringValue replaces non-empty secrets whenever they are printed.
const SecretStringValue = "<secret>"

// SecretString holds document passwords. Value is only available through
// explicit conversion, marshaling and formatting never reveal it, so
// configuration can be dumped into debug reports and logs.
type SecretString string

func (s SecretString) masked() any {
	if len(s) == 0 {
		return nil
	}
	return SecretStringValue
}

// String implements fmt.Stringer, so %v and zap.Stringer stay safe.
func (s SecretString) String() string {
	if len(s) == 0 {
		return ""
	}
	return SecretStringValue
}

func (s SecretString) MarshalJSON() ([]byte, error) {
	if s.masked() == nil {
		return []byte("null"), nil
	}
	return []byte(`"` + SecretStringValue + `"`), nil
}

func (s SecretString) MarshalYAML() (any, error) {
	return s.masked(), nil
}
