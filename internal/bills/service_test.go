package bills

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBillRepository struct {
	bills map[string]*Bill
}

func newMockBillRepository() *mockBillRepository {
	return &mockBillRepository{bills: map[string]*Bill{}}
}

func (m *mockBillRepository) createBill(bill *Bill) error {
	stored := *bill
	m.bills[bill.ID] = &stored
	return nil
}

func (m *mockBillRepository) getBillsByUser(userID string) ([]Bill, error) {
	var result []Bill
	for _, bill := range m.bills {
		if bill.UserID == userID {
			result = append(result, *bill)
		}
	}
	return result, nil
}

func (m *mockBillRepository) getBillByID(userID, billID string) (*Bill, error) {
	bill, ok := m.bills[billID]
	if !ok || bill.UserID != userID {
		return nil, ErrBillNotFound
	}
	copied := *bill
	return &copied, nil
}

func (m *mockBillRepository) updateBill(bill *Bill) error {
	existing, ok := m.bills[bill.ID]
	if !ok || existing.UserID != bill.UserID {
		return ErrBillNotFound
	}
	stored := *bill
	m.bills[bill.ID] = &stored
	return nil
}

func (m *mockBillRepository) deleteBill(userID, billID string) error {
	bill, ok := m.bills[billID]
	if !ok || bill.UserID != userID {
		return ErrBillNotFound
	}
	delete(m.bills, billID)
	return nil
}

func (m *mockBillRepository) getUnpaidDueBetween(from, to time.Time) ([]Bill, error) {
	var result []Bill
	for _, bill := range m.bills {
		if !bill.IsPaid && !bill.DueDate.Before(from) && bill.DueDate.Before(to) {
			result = append(result, *bill)
		}
	}
	return result, nil
}

var billTestNow = time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

func newTestBillService() (Service, *mockBillRepository) {
	repo := newMockBillRepository()
	svc := &service{repo: repo, now: func() time.Time { return billTestNow }}
	return svc, repo
}

func TestCreateBill_DefaultsAndValidation(t *testing.T) {
	svc, _ := newTestBillService()

	bill := &Bill{UserID: "user-1", Name: "Rent", Amount: 20000}
	require.NoError(t, svc.CreateBill(bill))
	assert.NotEmpty(t, bill.ID)
	assert.Equal(t, FrequencyMonthly, bill.Frequency)
	assert.Equal(t, billTestNow, bill.DueDate)

	assert.ErrorIs(t, svc.CreateBill(&Bill{UserID: "user-1", Amount: 10}), ErrNameRequired)
	assert.ErrorIs(t, svc.CreateBill(&Bill{UserID: "user-1", Name: "Gym", Amount: 0}), ErrInvalidAmount)
	assert.ErrorIs(t, svc.CreateBill(&Bill{UserID: "user-1", Name: "Gym", Amount: 10, Frequency: "daily"}), ErrInvalidFrequency)
}

func TestMarkPaid_SetsLastPaidDate(t *testing.T) {
	svc, _ := newTestBillService()

	bill := &Bill{UserID: "user-1", Name: "Internet", Amount: 800}
	require.NoError(t, svc.CreateBill(bill))

	paid, err := svc.MarkPaid("user-1", bill.ID)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.LastPaidDate)
	assert.Equal(t, billTestNow, *paid.LastPaidDate)

	_, err = svc.MarkPaid("someone-else", bill.ID)
	assert.ErrorIs(t, err, ErrBillNotFound)
}

func TestGetSummary_NormalizesFrequencies(t *testing.T) {
	svc, _ := newTestBillService()

	paid := true
	overdue := billTestNow.AddDate(0, 0, -5)
	upcoming := billTestNow.AddDate(0, 0, 5)

	require.NoError(t, svc.CreateBill(&Bill{UserID: "user-1", Name: "Rent", Amount: 20000, Frequency: FrequencyMonthly, DueDate: overdue}))
	require.NoError(t, svc.CreateBill(&Bill{UserID: "user-1", Name: "Insurance", Amount: 12000, Frequency: FrequencyYearly, DueDate: upcoming}))
	require.NoError(t, svc.CreateBill(&Bill{UserID: "user-1", Name: "Cleaning", Amount: 500, Frequency: FrequencyWeekly, DueDate: upcoming}))
	require.NoError(t, svc.CreateBill(&Bill{UserID: "user-1", Name: "Water", Amount: 900, Frequency: FrequencyQuarterly, DueDate: upcoming}))

	gym := &Bill{UserID: "user-1", Name: "Gym", Amount: 1500, Frequency: FrequencyMonthly, DueDate: overdue}
	require.NoError(t, svc.CreateBill(gym))
	_, err := svc.UpdateBill("user-1", gym.ID, BillUpdate{IsPaid: &paid})
	require.NoError(t, err)

	summary, err := svc.GetSummary("user-1")
	require.NoError(t, err)

	assert.Equal(t, 5, summary.TotalBills)
	assert.Equal(t, 4, summary.UnpaidCount)
	assert.Equal(t, float64(33400), summary.UnpaidAmount)
	assert.Equal(t, 1, summary.OverdueCount)
	assert.Equal(t, float64(20000), summary.OverdueAmount)
	// 20000 + 12000/12 + 500*4 + 900/3 + 1500
	assert.Equal(t, float64(24800), summary.MonthlyTotal)
}

func TestGetBillsDueSoon_FiltersWindowAndPaid(t *testing.T) {
	svc, _ := newTestBillService()

	require.NoError(t, svc.CreateBill(&Bill{UserID: "user-1", Name: "Rent", Amount: 20000, DueDate: billTestNow.AddDate(0, 0, 2)}))
	require.NoError(t, svc.CreateBill(&Bill{UserID: "user-2", Name: "Loan", Amount: 5000, DueDate: billTestNow.AddDate(0, 0, 10)}))

	inWindow := &Bill{UserID: "user-1", Name: "Internet", Amount: 800, DueDate: billTestNow.AddDate(0, 0, 1)}
	require.NoError(t, svc.CreateBill(inWindow))
	_, err := svc.MarkPaid("user-1", inWindow.ID)
	require.NoError(t, err)

	due, err := svc.GetBillsDueSoon(3)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Rent", due[0].Name)
}
