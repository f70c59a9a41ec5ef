package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClientRepository struct {
	clients map[string]*Client
}

func newMockClientRepository() *mockClientRepository {
	return &mockClientRepository{clients: map[string]*Client{}}
}

func (m *mockClientRepository) createClient(client *Client) error {
	stored := *client
	m.clients[client.ID] = &stored
	return nil
}

func (m *mockClientRepository) getClientsByUser(userID string) ([]Client, error) {
	var result []Client
	for _, client := range m.clients {
		if client.UserID == userID {
			result = append(result, *client)
		}
	}
	return result, nil
}

func (m *mockClientRepository) getClientByID(userID, clientID string) (*Client, error) {
	client, ok := m.clients[clientID]
	if !ok || client.UserID != userID {
		return nil, ErrClientNotFound
	}
	copied := *client
	return &copied, nil
}

func (m *mockClientRepository) updateClient(client *Client) error {
	existing, ok := m.clients[client.ID]
	if !ok || existing.UserID != client.UserID {
		return ErrClientNotFound
	}
	balance := existing.Balance
	stored := *client
	stored.Balance = balance
	m.clients[client.ID] = &stored
	return nil
}

func (m *mockClientRepository) deleteClient(userID, clientID string) error {
	client, ok := m.clients[clientID]
	if !ok || client.UserID != userID {
		return ErrClientNotFound
	}
	delete(m.clients, clientID)
	return nil
}

func (m *mockClientRepository) adjustBalance(userID, clientID string, amount float64) error {
	client, ok := m.clients[clientID]
	if !ok || client.UserID != userID {
		return ErrClientNotFound
	}
	client.Balance += amount
	return nil
}

func TestAdjustBalance_AppliesSignedIncrements(t *testing.T) {
	svc := NewService(newMockClientRepository())

	client := &Client{UserID: "user-1", Name: "Acme Corp"}
	require.NoError(t, svc.CreateClient(client))

	updated, err := svc.AdjustBalance("user-1", client.ID, 1200)
	require.NoError(t, err)
	assert.Equal(t, float64(1200), updated.Balance)

	updated, err = svc.AdjustBalance("user-1", client.ID, -1700)
	require.NoError(t, err)
	assert.Equal(t, float64(-500), updated.Balance)

	_, err = svc.AdjustBalance("user-1", client.ID, 0)
	assert.ErrorIs(t, err, ErrZeroAdjustment)

	_, err = svc.AdjustBalance("someone-else", client.ID, 100)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestGetSummary_SplitsOwedDirections(t *testing.T) {
	svc := NewService(newMockClientRepository())

	owesYou := &Client{UserID: "user-1", Name: "Acme Corp"}
	youOwe := &Client{UserID: "user-1", Name: "Beta LLC"}
	neutral := &Client{UserID: "user-1", Name: "Gamma Inc"}
	require.NoError(t, svc.CreateClient(owesYou))
	require.NoError(t, svc.CreateClient(youOwe))
	require.NoError(t, svc.CreateClient(neutral))

	_, err := svc.AdjustBalance("user-1", owesYou.ID, 8000)
	require.NoError(t, err)
	_, err = svc.AdjustBalance("user-1", youOwe.ID, -3000)
	require.NoError(t, err)

	summary, err := svc.GetSummary("user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalClients)
	assert.Equal(t, float64(5000), summary.NetBalance)
	assert.Equal(t, float64(8000), summary.OwedToYou)
	assert.Equal(t, float64(3000), summary.YouOwe)
}
