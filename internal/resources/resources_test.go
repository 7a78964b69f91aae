package resources

import (
	"encoding/json"
	"testing"
	"time"

	. "estatehub/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toMap(t *testing.T, value any) map[string]any {
	t.Helper()

	raw, err := json.Marshal(value)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	return payload
}

func TestNewPropertyResource(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	owner := &User{BaseModel: BaseModel{ID: 4}, FirstName: "Lina", LastName: "Landlord", Password: "hash"}

	property := &Property{
		BaseModel:   BaseModel{ID: 10, CreatedAt: created, UpdatedAt: created},
		Title:       "Sea View Flat",
		Price:       decimal.RequireFromString("1250.50"),
		Status:      PropertyStatusPending,
		ListingType: ListingTypeRent,
		NumOfRooms:  3,
		Slug:        "sea-view-flat",
		Location:    &Location{BaseModel: BaseModel{ID: 2}, City: "Tunis", State: "Tunis", Street: "Rue 1"},
		User:        owner,
		Images:      []PropertyImage{{BaseModel: BaseModel{ID: 1}, URL: "http://storage.local/a.jpg"}},
		Amenities:   []Amenity{{BaseModel: BaseModel{ID: 1}, Name: "Pool"}},
	}

	payload := toMap(t, NewPropertyResource(property))

	assert.Equal(t, "sea-view-flat", payload["slug"])
	assert.Equal(t, "rent", payload["listing_type"])
	assert.Equal(t, float64(3), payload["num_of_rooms"])
	assert.Equal(t, "1250.5", payload["price"])
	assert.Equal(t, "2024-03-01 09:30:00", payload["created_at"])
	assert.Nil(t, payload["property_type"])

	location := payload["location"].(map[string]any)
	assert.Equal(t, "Tunis", location["city"])

	user := payload["user"].(map[string]any)
	assert.Equal(t, "Lina", user["first_name"])
	assert.NotContains(t, user, "password")

	assert.Len(t, payload["images"], 1)
	assert.Len(t, payload["amenities"], 1)
}

func TestNewPropertyResource_EmptyRelations(t *testing.T) {
	payload := toMap(t, NewPropertyResource(&Property{Title: "Bare"}))

	assert.Nil(t, payload["user"])
	assert.Nil(t, payload["location"])
	assert.Equal(t, []any{}, payload["images"])
	assert.Equal(t, []any{}, payload["amenities"])

	assert.Nil(t, NewPropertyResource(nil))
	assert.Empty(t, NewPropertyCollection(nil))
}

func TestNewNotificationResource(t *testing.T) {
	propertyID := uint(10)
	notification := &Notification{
		BaseModel:  BaseModel{ID: 1, CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)},
		PropertyID: &propertyID,
		Message:    "Hello Lina, your property 'Sea View Flat' has been accepted.",
		Type:       NotificationTypeStatusChange,
		FromUser:   &User{BaseModel: BaseModel{ID: 1}, FirstName: "Ada", Role: RoleAdmin},
		ToUser:     &User{BaseModel: BaseModel{ID: 4}, FirstName: "Lina", Role: RoleLandlord},
	}

	payload := toMap(t, NewNotificationResource(notification))

	assert.Equal(t, "status_change", payload["type"])
	assert.Equal(t, "2024-03-01 09:30:00", payload["created_at"])
	assert.Equal(t, float64(10), payload["property_id"])
	assert.Equal(t, "Lina", payload["user"].(map[string]any)["first_name"])
	assert.Equal(t, "Ada", payload["landlord"].(map[string]any)["first_name"])
}

func TestNewPropertyUpdateResource(t *testing.T) {
	approvedAt := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	update := &PropertyUpdate{
		BaseModel:  BaseModel{ID: 3},
		PropertyID: 10,
		Data:       map[string]any{"price": "900"},
		Status:     PropertyUpdateStatusApproved,
		ApprovedAt: &approvedAt,
	}

	resource := NewPropertyUpdateResource(update)
	require.NotNil(t, resource.ApprovedAt)
	assert.Equal(t, "2024-03-02 08:00:00", *resource.ApprovedAt)
	assert.Equal(t, "900", resource.Data["price"])
	assert.Nil(t, resource.Property)
}

func TestNewReviewCollection(t *testing.T) {
	content := "Great spot"
	reviews := []Review{
		{BaseModel: BaseModel{ID: 1}, PropertyID: 10, Rate: 5, Content: &content},
		{BaseModel: BaseModel{ID: 2}, PropertyID: 10, Rate: 2},
	}

	collection := NewReviewCollection(reviews)
	require.Len(t, collection, 2)
	assert.Equal(t, &content, collection[0].Content)
	assert.Nil(t, collection[1].Content)
	assert.Nil(t, collection[1].User)
}
