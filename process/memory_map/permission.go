package memory_map

// SegmentPermission is one slot of a mapping's permission string
type SegmentPermission byte

const (
	Read         SegmentPermission = 'r'
	Write        SegmentPermission = 'w'
	Execute      SegmentPermission = 'x'
	NoPermission SegmentPermission = '-'
	Private      SegmentPermission = 'p' // copy on write
	Shared       SegmentPermission = 's'
)

// ParseSegmentPermission decodes a single permission character
func ParseSegmentPermission(c byte) (SegmentPermission, error) {
	switch p := SegmentPermission(c); p {
	case Read, Write, Execute, NoPermission, Private, Shared:
		return p, nil
	default:
		return 0, &UnknownPermissionError{Char: c}
	}
}

// String returns the single character form of the permission
func (p SegmentPermission) String() string {
	return string(rune(p))
}

// Permissions holds the four slots of a permission string in kernel order:
// read, write, execute, and the private/shared flag.
type Permissions [4]SegmentPermission

// ParsePermissions decodes a 4 character permission string such as "r-xp".
// Every slot is decoded on its own, so any of the six codes is accepted anywhere.
func ParsePermissions(s string) (Permissions, error) {
	var perms Permissions
	if len(s) != len(perms) {
		return perms, &PermissionLengthError{Token: s}
	}

	for i := range perms {
		p, err := ParseSegmentPermission(s[i])
		if err != nil {
			return Permissions{}, err
		}
		perms[i] = p
	}

	return perms, nil
}

// String returns the 4 character form, e.g. "rw-p"
func (p Permissions) String() string {
	b := make([]byte, len(p))
	for i, perm := range p {
		b[i] = byte(perm)
	}
	return string(b)
}

func (p Permissions) CanRead() bool {
	return p[0] == Read
}

func (p Permissions) CanWrite() bool {
	return p[1] == Write
}

func (p Permissions) CanExecute() bool {
	return p[2] == Execute
}

func (p Permissions) IsShared() bool {
	return p[3] == Shared
}

func (p Permissions) IsPrivate() bool {
	return p[3] == Private
}

// MarshalText encodes the permissions as the 4 character form
func (p Permissions) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes the 4 character form
func (p *Permissions) UnmarshalText(text []byte) error {
	perms, err := ParsePermissions(string(text))
	if err != nil {
		return err
	}
	*p = perms
	return nil
}
