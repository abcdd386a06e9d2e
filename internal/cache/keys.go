package cache

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Key construction is deterministic so identical logical lookups always land
// on the same entry and writes can invalidate the well-known composite keys
// for an entity without enumerating every filter combination.

func UserKey(id string) string            { return "user:" + id }
func UserPermissionsKey(id string) string { return "user:" + id + ":permissions" }
func CustomerKey(id string) string        { return "customer:" + id }
func SimKey(id string) string             { return "sim:" + id }
func SimWarehouseKey(warehouseID string) string {
	return "sims:warehouse:" + warehouseID
}
func TransactionHistoryKey(customerID string) string {
	return "transactions:" + customerID
}
func TicketKey(id string) string           { return "ticket:" + id }
func PlanKey(id string) string             { return "plan:" + id }
func WarehouseKey(id string) string        { return "warehouse:" + id }
func SystemStatsKey() string               { return "system:stats" }
func WebhookLogsKey(endpoint string) string { return "webhooks:" + endpoint + ":logs" }
func SessionKey(token string) string       { return "session:" + token }
func UserSessionsKey(userID string) string { return "user_sessions:" + userID }

// CollectionKey derives a key for a filtered collection query. The filter is
// serialized canonically (encoding/json sorts map keys, struct fields keep
// declaration order), so equal logical filters hash to the same key.
func CollectionKey(entityType string, filter any) string {
	return entityType + ":" + encodeParams(filter)
}

// ReportKey derives a key for an aggregate/report cache.
func ReportKey(reportType string, params any) string {
	return "reports:" + reportType + ":" + encodeParams(params)
}

func encodeParams(params any) string {
	raw, err := json.Marshal(params)
	if err != nil {
		// Unserializable params still need a deterministic fallback.
		return base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf("%+v", params)))
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// UserKeys lists the composite keys that can go stale when a user mutates.
func UserKeys(id string) []string {
	return []string{UserKey(id), UserPermissionsKey(id), TransactionHistoryKey(id)}
}

// CustomerKeys lists the composite keys that can go stale when a customer mutates.
func CustomerKeys(id string) []string {
	return []string{CustomerKey(id), TransactionHistoryKey(id)}
}

// SimKeys lists the composite keys that can go stale when a SIM mutates.
func SimKeys(id, warehouseID string) []string {
	keys := []string{SimKey(id)}
	if warehouseID != "" {
		keys = append(keys, SimWarehouseKey(warehouseID))
	}
	return keys
}

// TicketKeys lists the composite keys that can go stale when a ticket mutates.
func TicketKeys(id string) []string {
	return []string{TicketKey(id)}
}
