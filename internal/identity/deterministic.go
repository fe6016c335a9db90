// Package identity derives stable row keys for stored catalogs so that a
// rebuild of the same locale overwrites, rather than duplicates, its rows.
package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "awesome-mac"

// UUID hashes key with go-hashid. Blank keys yield uuid.Nil.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SnapshotUUID keys the snapshot of a locale. Locale case is ignored.
func SnapshotUUID(locale string) uuid.UUID {
	return scoped("snapshot", strings.ToLower(strings.TrimSpace(locale)))
}

// AppUUID keys an app row within a snapshot.
func AppUUID(snapshotID uuid.UUID, appID string) uuid.UUID {
	return scoped("app", snapshotID.String(), strings.TrimSpace(appID))
}

func scoped(kind string, parts ...string) uuid.UUID {
	return UUID(namespace + ":" + kind + ":" + strings.Join(parts, ":"))
}
