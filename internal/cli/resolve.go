package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avaforge-creator/subdrip/internal/core"
)

const minPrefix = 4

var (
	ErrNoMatch        = errors.New("no subscription matches")
	ErrAmbiguousMatch = errors.New("more than one subscription matches")
)

// ResolveID finds the subscription a user refers to by full id or by an
// id prefix of at least four characters.
func ResolveID(subs []core.Subscription, ref string) (core.Subscription, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if id, err := uuid.Parse(ref); err == nil {
		for _, s := range subs {
			if s.ID == id {
				return s, nil
			}
		}
		return core.Subscription{}, fmt.Errorf("%w %q", ErrNoMatch, ref)
	}
	if len(ref) < minPrefix {
		return core.Subscription{}, fmt.Errorf("id prefix %q is too short, use at least %d characters", ref, minPrefix)
	}

	var found []core.Subscription
	for _, s := range subs {
		if strings.HasPrefix(s.ID.String(), ref) {
			found = append(found, s)
		}
	}
	switch len(found) {
	case 0:
		return core.Subscription{}, fmt.Errorf("%w %q", ErrNoMatch, ref)
	case 1:
		return found[0], nil
	default:
		return core.Subscription{}, fmt.Errorf("%w %q", ErrAmbiguousMatch, ref)
	}
}

// ShortID is the id prefix shown in tables.
func ShortID(id uuid.UUID) string {
	return id.String()[:8]
}
