package inquiry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectSupportTypeDropsOtherBranch(t *testing.T) {
	t.Parallel()

	draft := Draft{Detail: OneTimeDetail{StartDate: "2025-06-01", Venue: "Hall"}}

	draft.SelectSupportType(SupportOneTime)
	detail, ok := draft.OneTime()
	require.True(t, ok)
	require.Equal(t, "Hall", detail.Venue)

	draft.SelectSupportType(SupportSubscription)
	sub, ok := draft.Subscription()
	require.True(t, ok)
	require.Equal(t, SubscriptionDetail{}, sub)

	draft.SelectSupportType(SupportOneTime)
	detail, ok = draft.OneTime()
	require.True(t, ok)
	require.Equal(t, OneTimeDetail{}, detail)

	draft.SelectSupportType(SupportUnset)
	require.Nil(t, draft.Detail)
}

func TestParseSupportType(t *testing.T) {
	t.Parallel()

	require.Equal(t, SupportOneTime, ParseSupportType(" one-time "))
	require.Equal(t, SupportSubscription, ParseSupportType("subscription"))
	require.Equal(t, SupportUnset, ParseSupportType("ONE_TIME"))
}

func TestNormalizePurposesKeepsKnownValuesInOrder(t *testing.T) {
	t.Parallel()

	got := NormalizePurposes([]string{"other", "bogus", "lecture", "other"})
	require.Equal(t, []Purpose{PurposeLecture, PurposeOther}, got)
	require.Nil(t, NormalizePurposes(nil))
}

func TestCloneCopiesPurposes(t *testing.T) {
	t.Parallel()

	draft := Draft{Detail: SubscriptionDetail{Purposes: []Purpose{PurposeMeeting}}}
	clone := draft.Clone()
	sub, _ := draft.Subscription()
	sub.Purposes[0] = PurposeOther

	cloned, _ := clone.Subscription()
	require.Equal(t, []Purpose{PurposeMeeting}, cloned.Purposes)
}

func TestDraftJSONKeepsSelectedBranch(t *testing.T) {
	t.Parallel()

	draft := Draft{
		Contact:        validContact(),
		Detail:         OneTimeDetail{StartDate: "2025-06-01", EndDate: "2025-06-02", Venue: "Seoul Hall", StartTime: "09:30"},
		AdditionalInfo: "Two booths",
		PrivacyAgreed:  true,
	}
	raw, err := json.Marshal(draft)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "subscription\":")

	var decoded Draft
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, draft, decoded)
}

func TestDraftJSONRejectsMissingDetail(t *testing.T) {
	t.Parallel()

	var decoded Draft
	require.Error(t, json.Unmarshal([]byte(`{"support_type":"one-time"}`), &decoded))
	require.Error(t, json.Unmarshal([]byte(`{"support_type":"weekly"}`), &decoded))
}
