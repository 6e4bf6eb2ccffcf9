package ids

import (
	"fmt"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"plantya-platform/internal/domain"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// New 单调递增 ULID，用作设备/集群的对外编号
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// UserID 角色前缀 + 5 位序号，如 U00001；序号超过 5 位时原样输出
func UserID(role domain.UserRole, seq int64) (string, error) {
	p, ok := role.Prefix()
	if !ok {
		return "", domain.ErrInvalidRole
	}
	if seq < 1 {
		return "", fmt.Errorf("ids: sequence must be positive, got %d", seq)
	}
	return fmt.Sprintf("%c%05d", p, seq), nil
}
