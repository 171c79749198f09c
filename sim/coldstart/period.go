package coldstart

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
)

// PeriodStats aggregates the requests issued during one tick.
type PeriodStats struct {
	Tick        int64
	Requests    int64
	Misses      int64
	Hits        int64
	MissPercent float64
	PeriodHash  string // empty unless Config.RecordHashes
}

// PeriodHash returns the hex MD5 of the tab-joined user ids, in draw order.
// It fingerprints the request order of a tick independently of cache state.
func PeriodHash(userIDs []int64) string {
	parts := make([]string, len(userIDs))
	for i, id := range userIDs {
		parts[i] = strconv.FormatInt(id, 10)
	}
	sum := md5.Sum([]byte(strings.Join(parts, "\t")))
	return hex.EncodeToString(sum[:])
}
