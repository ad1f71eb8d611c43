package rental

import (
	"encoding/json"
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/util"
	"strconv"
	"strings"
)

const DefaultUnitIdPrefix = "SH"

// NextUnitID returns the id following last. The number is read after the last
// dash, so prefixes may contain dashes themselves. Without a last id the first
// id of the sequence is returned. An unparseable suffix counts as 0.
func NextUnitID(prefix string, last string, exist bool) string {
	return nextUnitId(prefix, last, exist, nil)
}

func nextUnitId(prefix string, last string, exist bool, hook CoercionHook) string {
	if !exist {
		return formatUnitId(prefix, 1)
	}

	n := 0
	i := strings.LastIndex(last, "-")
	if i < 0 {
		hook.report("unit_id", last, "0", "missing numeric suffix")
	} else if v, err := strconv.Atoi(last[i+1:]); err != nil {
		hook.report("unit_id", last, "0", err.Error())
	} else {
		n = v
	}

	return formatUnitId(prefix, n+1)
}

func formatUnitId(prefix string, n int) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}

// BookedDays counts the days of an inclusive date range. Missing, malformed or
// reversed ranges count as 0.
func BookedDays(from, to string) int {
	return bookedDays(from, to, nil)
}

func bookedDays(from, to string, hook CoercionHook) int {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return 0
	}

	d1, err := util.ParseDate(from)
	if err != nil {
		hook.report("booked_from", from, "0", err.Error())
		return 0
	}

	d2, err := util.ParseDate(to)
	if err != nil {
		hook.report("booked_to", to, "0", err.Error())
		return 0
	}

	days := util.DaysBetween(d1, d2)
	if days < 0 {
		return 0
	}

	return days + 1
}

func encodeList(values []string) string {
	if values == nil {
		values = []string{}
	}

	b, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}

	return string(b)
}

func decodeList(field string, raw string, hook CoercionHook) []string {
	values := []string{}
	if strings.TrimSpace(raw) == "" {
		return values
	}

	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		hook.report(field, raw, "[]", err.Error())
		return []string{}
	}

	if values == nil {
		return []string{}
	}

	return values
}

func encodeMeta(meta map[string]any) string {
	if meta == nil {
		return "{}"
	}

	b, err := json.Marshal(meta)
	if err != nil {
		return "{}"
	}

	return string(b)
}

func decodeMeta(raw string, hook CoercionHook) map[string]any {
	meta := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return meta
	}

	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		hook.report("meta_json", raw, "{}", err.Error())
		return map[string]any{}
	}

	if meta == nil {
		return map[string]any{}
	}

	return meta
}
