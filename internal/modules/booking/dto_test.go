package booking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"talently/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDateTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"plain date", `"2030-06-01"`, time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339", `"2030-06-01T18:30:00Z"`, time.Date(2030, 6, 1, 18, 30, 0, 0, time.UTC), false},
		{"offset", `"2030-06-01T20:30:00+02:00"`, time.Date(2030, 6, 1, 18, 30, 0, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"garbage", `"next friday"`, time.Time{}, true},
		{"number", `1717200000`, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DateTime
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, d.Equal(tt.want), "got %s", d.Time)
		})
	}
}

func TestCreateBookingRequest_DateOnlyBody(t *testing.T) {
	body := `{"talentId":"t1","clientName":"Jane","clientEmail":"jane@client.test","startDate":"2030-06-01","endDate":"2030-06-03"}`

	var req CreateBookingRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.True(t, req.StartDate.Equal(time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, req.EndDate.Equal(time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)))

	var partial UpdateBookingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"endDate":"2030-06-04","startDate":null}`), &partial))
	assert.Nil(t, partial.StartDate)
	require.NotNil(t, partial.EndDate)
	assert.True(t, partial.EndDate.Equal(time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC)))
}

func TestCreateBookingRequest_MissingDatesFailValidation(t *testing.T) {
	svc, repo, _, _ := newMockService()
	_, err := svc.Create(context.Background(), CreateBookingRequest{
		TalentID:    "t1",
		ClientName:  "Jane Client",
		ClientEmail: "jane@client.test",
	})
	var de *domain.Error
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Equal(t, "required", de.Details["startDate"])
	assert.Equal(t, "required", de.Details["endDate"])
	repo.AssertNotCalled(t, "CreateIfAvailable", mock.Anything, mock.Anything)
}
