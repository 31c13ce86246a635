package symbols

import "strings"

// Signature is the ordered parameter base-type list plus the optional return
// base type of a subprogram-like entity. Two signatures are equal iff their
// keys are equal; the key is the hash key inside an overload set.
type Signature struct {
	Params []*TypeEnt
	Return *TypeEnt
}

func NewSignature(params []*TypeEnt, ret *TypeEnt) *Signature {
	return &Signature{Params: params, Return: ret}
}

// SignatureKey is a canonical encoding of a signature's base type ids.
type SignatureKey string

// Key computes the signature key from base-type identities. Unresolved
// parameter types contribute a distinct marker so broken declarations do not
// collide with each other.
func (s *Signature) Key() SignatureKey {
	var sb strings.Builder
	for i, p := range s.Params {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeTypeKey(&sb, p)
	}
	sb.WriteByte('>')
	if s.Return != nil {
		writeTypeKey(&sb, s.Return)
	}
	return SignatureKey(sb.String())
}

func writeTypeKey(sb *strings.Builder, t *TypeEnt) {
	if t == nil {
		sb.WriteByte('?')
		return
	}
	base := t.BaseType()
	for _, c := range itoa(uint64(base.ID())) {
		sb.WriteByte(c)
	}
}

func itoa(v uint64) []byte {
	if v == 0 {
		return []byte{'0'}
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return buf[i:]
}

// Describe renders the signature the way it appears in diagnostics,
// e.g. "[integer, integer return boolean]".
func (s *Signature) Describe() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, p := range s.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		if p == nil {
			sb.WriteByte('?')
		} else {
			sb.WriteString(p.Designator().String())
		}
	}
	if s.Return != nil {
		if len(s.Params) > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("return ")
		sb.WriteString(s.Return.Designator().String())
	}
	sb.WriteByte(']')
	return sb.String()
}
