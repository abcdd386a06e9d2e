package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityKeys(t *testing.T) {
	assert.Equal(t, "user:7", UserKey("7"))
	assert.Equal(t, "user:7:permissions", UserPermissionsKey("7"))
	assert.Equal(t, "customer:42", CustomerKey("42"))
	assert.Equal(t, "sim:9", SimKey("9"))
	assert.Equal(t, "sims:warehouse:w1", SimWarehouseKey("w1"))
	assert.Equal(t, "transactions:42", TransactionHistoryKey("42"))
	assert.Equal(t, "ticket:3", TicketKey("3"))
	assert.Equal(t, "plan:p1", PlanKey("p1"))
	assert.Equal(t, "warehouse:w1", WarehouseKey("w1"))
	assert.Equal(t, "system:stats", SystemStatsKey())
	assert.Equal(t, "webhooks:billing:logs", WebhookLogsKey("billing"))
	assert.Equal(t, "session:tok", SessionKey("tok"))
	assert.Equal(t, "user_sessions:7", UserSessionsKey("7"))
}

func TestCollectionKeyDeterministic(t *testing.T) {
	type filter struct {
		Status string `json:"status,omitempty"`
		Page   int    `json:"page"`
	}

	a := CollectionKey("sims", filter{Status: "active", Page: 1})
	b := CollectionKey("sims", filter{Status: "active", Page: 1})
	assert.Equal(t, a, b, "identical logical filters must land on the same entry")

	c := CollectionKey("sims", filter{Status: "suspended", Page: 1})
	assert.NotEqual(t, a, c)

	d := CollectionKey("customers", filter{Status: "active", Page: 1})
	assert.NotEqual(t, a, d, "entity type participates in the key")
}

func TestReportKeyDeterministic(t *testing.T) {
	type window struct {
		UserID string `json:"userId"`
		Days   int    `json:"days"`
	}

	a := ReportKey("user_activity", window{UserID: "7", Days: 30})
	b := ReportKey("user_activity", window{UserID: "7", Days: 30})
	assert.Equal(t, a, b)
	assert.Contains(t, a, "reports:user_activity:")

	c := ReportKey("user_activity", window{UserID: "7", Days: 7})
	assert.NotEqual(t, a, c)
}

func TestCompositeKeySets(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"user:7", "user:7:permissions", "transactions:7"},
		UserKeys("7"))

	assert.ElementsMatch(t,
		[]string{"customer:42", "transactions:42"},
		CustomerKeys("42"))

	assert.ElementsMatch(t,
		[]string{"sim:9", "sims:warehouse:w1"},
		SimKeys("9", "w1"))
	assert.ElementsMatch(t,
		[]string{"sim:9"},
		SimKeys("9", ""), "unassigned sims carry no warehouse collection key")

	assert.ElementsMatch(t, []string{"ticket:3"}, TicketKeys("3"))
}
