package services

import (
	"strconv"
	"strings"

	"github.com/ghuser/equiptrack/services/tracking/domain/models"
)

// csvTimeLayout renders timestamps as ISO-8601 with millisecond precision in
// UTC, e.g. 2024-01-01T00:00:00.000Z.
const csvTimeLayout = "2006-01-02T15:04:05.000Z"

// RenderBulksCSV projects bulk records into the fixed CSV report format:
//
//	date,eventType,batteryCount,user,deviceIds
//	2024-01-01T00:00:00.000Z,returned,5,"Jane Doe (jane@x.com)","A, B"
//
// The user and device-id columns are wrapped in one pair of double quotes
// with no escaping of embedded quotes or commas. That matches the upstream
// report contract exactly; consumers of this report rely on the byte format,
// so encoding/csv (which would escape) is deliberately not used.
func RenderBulksCSV(bulks []*models.BulkWithDetails) string {
	var b strings.Builder
	b.WriteString("date,eventType,batteryCount,user,deviceIds\n")

	for _, bulk := range bulks {
		deviceIDs := make([]string, len(bulk.Entries))
		for i, entry := range bulk.Entries {
			deviceIDs[i] = entry.DeviceID.String()
		}

		b.WriteString(bulk.Bulk.Date.UTC().Format(csvTimeLayout))
		b.WriteByte(',')
		b.WriteString(bulk.Bulk.EventType.String())
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(bulk.Bulk.BatteryCount))
		b.WriteString(`,"`)
		b.WriteString(bulk.User.FirstName)
		b.WriteByte(' ')
		b.WriteString(bulk.User.LastName)
		b.WriteString(" (")
		b.WriteString(bulk.User.Email)
		b.WriteString(`)","`)
		b.WriteString(strings.Join(deviceIDs, ", "))
		b.WriteString("\"\n")
	}

	return b.String()
}
