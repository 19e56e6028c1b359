package kernel

import "strings"

type Email string

func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return string(e) == "" }

// Normalized returns the email lowercased and trimmed, the form used
// for storage and recipient deduplication
func (e Email) Normalized() Email {
	return Email(strings.ToLower(strings.TrimSpace(string(e))))
}

// IsValid performs a minimal structural check (local@domain)
func (e Email) IsValid() bool {
	s := string(e)
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return strings.Contains(s[at+1:], ".")
}

type Phone string

func (p Phone) String() string { return string(p) }
func (p Phone) IsEmpty() bool  { return string(p) == "" }

// Salary is a monthly net amount in Chilean pesos. A nil *Salary means
// the amount was not disclosed.
type Salary int

func (s Salary) Int() int { return int(s) }

type BucketURL string

func (b BucketURL) String() string { return string(b) }
func (b BucketURL) IsEmpty() bool  { return string(b) == "" }
