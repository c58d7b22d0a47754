package meta

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/meta-sheets-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-sheets-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-sheets-sync/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
	"github.com/vfg2006/meta-sheets-sync/pkg/retry"
	"go.uber.org/mock/gomock"
)

var testPolicy = retry.Policy{
	MaxRetries: 2,
	BaseDelay:  time.Millisecond,
	Multiplier: 2,
	MaxDelay:   10 * time.Millisecond,
}

var testWindow = domain.SingleDayWindow(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))

func record(name string) json.RawMessage {
	return json.RawMessage(`{"campaign_name": "` + name + `"}`)
}

func TestPageStreamWalksAllPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	fetcher := NewFetcher(client, testPolicy)

	gomock.InOrder(
		client.EXPECT().
			FetchPage(gomock.Any(), "123456", domain.ResourceInsights, testWindow, metadomain.Cursor{}).
			Return(&metaclient.Page{
				Records: []json.RawMessage{record("A"), record("B")},
				Cursor:  metadomain.Cursor{Token: "cursor-1", HasNext: true},
			}, nil),
		client.EXPECT().
			FetchPage(gomock.Any(), "123456", domain.ResourceInsights, testWindow, metadomain.Cursor{Token: "cursor-1", HasNext: true}).
			Return(&metaclient.Page{
				Records: []json.RawMessage{record("C")},
				Cursor:  metadomain.Cursor{},
			}, nil),
	)

	stream := fetcher.FetchAll(context.Background(), "123456", domain.ResourceInsights, testWindow)

	var total int
	for stream.Next() {
		total += len(stream.Records())
	}

	require.NoError(t, stream.Err())
	assert.Equal(t, 3, total)

	// stream esgotado não rebusca
	assert.False(t, stream.Next())
}

func TestPageStreamDetectsCursorReuse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	fetcher := NewFetcher(client, testPolicy)

	// o servidor devolve o mesmo cursor duas vezes
	client.EXPECT().
		FetchPage(gomock.Any(), "123456", domain.ResourceInsights, testWindow, gomock.Any()).
		Return(&metaclient.Page{
			Records: []json.RawMessage{record("A")},
			Cursor:  metadomain.Cursor{Token: "same-cursor", HasNext: true},
		}, nil).
		Times(2)

	stream := fetcher.FetchAll(context.Background(), "123456", domain.ResourceInsights, testWindow)

	require.True(t, stream.Next())
	require.False(t, stream.Next())

	var malformed *metadomain.MalformedResponseError
	require.ErrorAs(t, stream.Err(), &malformed)
}

func TestPageStreamDetectsEmptyCursorWithNextPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	fetcher := NewFetcher(client, testPolicy)

	// o servidor afirma haver próxima página mas devolve o cursor vazio
	// inicial, o que rebuscaria a primeira página para sempre
	client.EXPECT().
		FetchPage(gomock.Any(), "123456", domain.ResourceInsights, testWindow, metadomain.Cursor{}).
		Return(&metaclient.Page{
			Records: []json.RawMessage{record("A")},
			Cursor:  metadomain.Cursor{Token: "", HasNext: true},
		}, nil).
		Times(1)

	stream := fetcher.FetchAll(context.Background(), "123456", domain.ResourceInsights, testWindow)

	require.False(t, stream.Next())

	var malformed *metadomain.MalformedResponseError
	require.ErrorAs(t, stream.Err(), &malformed)
}

func TestPageStreamRetriesTransientFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	fetcher := NewFetcher(client, testPolicy)

	gomock.InOrder(
		client.EXPECT().
			FetchPage(gomock.Any(), "123456", domain.ResourceInsights, testWindow, gomock.Any()).
			Return(nil, &metadomain.RateLimitError{Message: "limite atingido"}),
		client.EXPECT().
			FetchPage(gomock.Any(), "123456", domain.ResourceInsights, testWindow, gomock.Any()).
			Return(&metaclient.Page{
				Records: []json.RawMessage{record("A")},
				Cursor:  metadomain.Cursor{},
			}, nil),
	)

	stream := fetcher.FetchAll(context.Background(), "123456", domain.ResourceInsights, testWindow)

	require.True(t, stream.Next())
	assert.Len(t, stream.Records(), 1)
	require.False(t, stream.Next())
	require.NoError(t, stream.Err())
}

func TestPageStreamExhaustsRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	fetcher := NewFetcher(client, testPolicy)

	// 1 tentativa + 2 retries, todas com rate limit
	client.EXPECT().
		FetchPage(gomock.Any(), "123456", domain.ResourceInsights, testWindow, gomock.Any()).
		Return(nil, &metadomain.RateLimitError{Message: "limite atingido"}).
		Times(3)

	stream := fetcher.FetchAll(context.Background(), "123456", domain.ResourceInsights, testWindow)

	require.False(t, stream.Next())

	var exhausted *metadomain.FetchExhaustedError
	require.ErrorAs(t, stream.Err(), &exhausted)
	assert.Equal(t, "123456", exhausted.AccountID)
	assert.Equal(t, 1, exhausted.Page)

	var rateLimited *metadomain.RateLimitError
	assert.ErrorAs(t, exhausted.LastErr, &rateLimited)
}

func TestPageStreamDoesNotRetryAuthErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	fetcher := NewFetcher(client, testPolicy)

	client.EXPECT().
		FetchPage(gomock.Any(), "123456", domain.ResourceInsights, testWindow, gomock.Any()).
		Return(nil, &metadomain.AuthError{AccountID: "123456", Message: "token expirado"}).
		Times(1)

	stream := fetcher.FetchAll(context.Background(), "123456", domain.ResourceInsights, testWindow)

	require.False(t, stream.Next())

	var authErr *metadomain.AuthError
	require.ErrorAs(t, stream.Err(), &authErr)
}
