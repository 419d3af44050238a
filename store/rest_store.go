package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/config"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/models"
)

// RestStore implements Store against a hosted PostgREST-shaped table
// API (Supabase). The remote API has no transaction primitive, so
// WithTransaction journals every insert and compensates with deletes
// in reverse order when the callback fails; a failed submission leaves
// no orphaned rows behind.
type RestStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
	journal *txJournal
}

type journalEntry struct {
	table    string
	pkColumn string
	id       uint
}

// txJournal records created rows so an emulated transaction can undo
// them. Member inserts fan out concurrently, hence the mutex.
type txJournal struct {
	mu      sync.Mutex
	entries []journalEntry
}

// NewRestStore builds a client for the remote table API.
func NewRestStore(baseURL, apiKey string) *RestStore {
	return &RestStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// restError carries the backend diagnostic code through to the 500
// response details field.
type restError struct {
	Status  int
	Code    string
	Message string
}

func (e *restError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
}

// BackendCode extracts the backend-specific diagnostic code from a
// store error, or "" when there is none.
func BackendCode(err error) string {
	var re *restError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

func (s *RestStore) do(ctx context.Context, method, table string, query url.Values, body interface{}, out interface{}) error {
	endpoint := s.baseURL + "/rest/v1/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		re := &restError{Status: resp.StatusCode, Message: string(raw)}
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Code != "" {
			re.Code = apiErr.Code
			re.Message = apiErr.Message
		}
		return re
	}

	if out != nil && len(raw) > 0 {
		return json.Unmarshal(raw, out)
	}
	return nil
}

// insertBody converts a model into an insert payload, dropping the
// store-generated key and timestamp columns so the backend assigns
// them.
func insertBody(record interface{}, pkColumn string) (map[string]interface{}, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	body := map[string]interface{}{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	delete(body, pkColumn)
	delete(body, "created_at")
	delete(body, "updated_at")
	return body, nil
}

func eq(column string, id uint) url.Values {
	return url.Values{column: []string{"eq." + strconv.FormatUint(uint64(id), 10)}}
}

func (s *RestStore) insert(ctx context.Context, table, pkColumn string, record interface{}, out interface{}) error {
	body, err := insertBody(record, pkColumn)
	if err != nil {
		return err
	}
	return s.do(ctx, http.MethodPost, table, nil, body, out)
}

func (s *RestStore) record(table, pkColumn string, id uint) {
	if s.journal != nil {
		s.journal.mu.Lock()
		s.journal.entries = append(s.journal.entries, journalEntry{table: table, pkColumn: pkColumn, id: id})
		s.journal.mu.Unlock()
	}
}

// restUser carries the password column over the wire; the model keeps
// it out of JSON so API responses never leak hashes.
type restUser struct {
	ID       uint   `json:"id,omitempty"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// 1. GetUserByUsername looks up a parish account; nil when missing.
func (s *RestStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := url.Values{"username": []string{"eq." + username}, "limit": []string{"1"}}
	var rows []restUser
	if err := s.do(ctx, http.MethodGet, "users", query, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &models.User{
		ID:       rows[0].ID,
		Username: rows[0].Username,
		Password: rows[0].Password,
	}, nil
}

// 2. CreateUser inserts a parish account.
func (s *RestStore) CreateUser(ctx context.Context, user *models.User) (uint, error) {
	var rows []restUser
	body := restUser{Username: user.Username, Password: user.Password}
	if err := s.do(ctx, http.MethodPost, "users", nil, body, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("insert into users returned no row")
	}
	s.record("users", "id", rows[0].ID)
	return rows[0].ID, nil
}

// 3. ListParishes returns all account usernames ordered by name.
func (s *RestStore) ListParishes(ctx context.Context) ([]string, error) {
	query := url.Values{"select": []string{"username"}, "order": []string{"username.asc"}}
	var rows []struct {
		Username string `json:"username"`
	}
	if err := s.do(ctx, http.MethodGet, "users", query, nil, &rows); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Username)
	}
	return names, nil
}

// 4. CreateHousehold inserts the aggregate root and returns its id.
func (s *RestStore) CreateHousehold(ctx context.Context, h *models.Household) (uint, error) {
	var rows []models.Household
	if err := s.insert(ctx, "households", "household_id", h, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("insert into households returned no row")
	}
	s.record("households", "household_id", rows[0].HouseholdID)
	return rows[0].HouseholdID, nil
}

// 5. GetHousehold resolves a household by id; nil when missing.
func (s *RestStore) GetHousehold(ctx context.Context, id uint) (*models.Household, error) {
	query := eq("household_id", id)
	query.Set("limit", "1")
	var rows []models.Household
	if err := s.do(ctx, http.MethodGet, "households", query, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// 6. UpdateHousehold applies a partial update.
func (s *RestStore) UpdateHousehold(ctx context.Context, id uint, updates map[string]interface{}) error {
	return s.do(ctx, http.MethodPatch, "households", eq("household_id", id), updates, nil)
}

// 7. DeleteHousehold removes a household and its dependent records.
func (s *RestStore) DeleteHousehold(ctx context.Context, id uint) error {
	for _, table := range []string{"family_members", "health_conditions", "socio_economic"} {
		if err := s.do(ctx, http.MethodDelete, table, eq("household_id", id), nil, nil); err != nil {
			return err
		}
	}
	return s.do(ctx, http.MethodDelete, "households", eq("household_id", id), nil, nil)
}

// 8. CreateFamilyMember inserts a member row and returns its id.
func (s *RestStore) CreateFamilyMember(ctx context.Context, m *models.FamilyMember) (uint, error) {
	var rows []models.FamilyMember
	if err := s.insert(ctx, "family_members", "member_id", m, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("insert into family_members returned no row")
	}
	s.record("family_members", "member_id", rows[0].MemberID)
	return rows[0].MemberID, nil
}

// 9. GetFamilyMember resolves a member by id; nil when missing.
func (s *RestStore) GetFamilyMember(ctx context.Context, id uint) (*models.FamilyMember, error) {
	query := eq("member_id", id)
	query.Set("limit", "1")
	var rows []models.FamilyMember
	if err := s.do(ctx, http.MethodGet, "family_members", query, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// 10. ListFamilyMembersByHousehold returns members ordered by id.
func (s *RestStore) ListFamilyMembersByHousehold(ctx context.Context, householdID uint) ([]models.FamilyMember, error) {
	query := eq("household_id", householdID)
	query.Set("order", "member_id.asc")
	members := []models.FamilyMember{}
	if err := s.do(ctx, http.MethodGet, "family_members", query, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// 11. UpdateFamilyMember applies a partial update.
func (s *RestStore) UpdateFamilyMember(ctx context.Context, id uint, updates map[string]interface{}) error {
	return s.do(ctx, http.MethodPatch, "family_members", eq("member_id", id), updates, nil)
}

// 12. DeleteFamilyMember removes a single member row.
func (s *RestStore) DeleteFamilyMember(ctx context.Context, id uint) error {
	return s.do(ctx, http.MethodDelete, "family_members", eq("member_id", id), nil, nil)
}

// 13. CreateHealthConditions inserts the health section row.
func (s *RestStore) CreateHealthConditions(ctx context.Context, h *models.HealthConditions) (uint, error) {
	var rows []models.HealthConditions
	if err := s.insert(ctx, "health_conditions", "health_condition_id", h, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("insert into health_conditions returned no row")
	}
	s.record("health_conditions", "health_condition_id", rows[0].HealthConditionID)
	return rows[0].HealthConditionID, nil
}

// 14. GetHealthConditionsByHousehold; nil when missing.
func (s *RestStore) GetHealthConditionsByHousehold(ctx context.Context, householdID uint) (*models.HealthConditions, error) {
	query := eq("household_id", householdID)
	query.Set("limit", "1")
	var rows []models.HealthConditions
	if err := s.do(ctx, http.MethodGet, "health_conditions", query, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// 15. UpdateHealthConditionsByHousehold applies a partial update.
func (s *RestStore) UpdateHealthConditionsByHousehold(ctx context.Context, householdID uint, updates map[string]interface{}) error {
	return s.do(ctx, http.MethodPatch, "health_conditions", eq("household_id", householdID), updates, nil)
}

// 16. CreateSocioEconomic inserts the socio-economic section row.
func (s *RestStore) CreateSocioEconomic(ctx context.Context, se *models.SocioEconomic) (uint, error) {
	var rows []models.SocioEconomic
	if err := s.insert(ctx, "socio_economic", "socio_economic_id", se, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("insert into socio_economic returned no row")
	}
	s.record("socio_economic", "socio_economic_id", rows[0].SocioEconomicID)
	return rows[0].SocioEconomicID, nil
}

// 17. GetSocioEconomicByHousehold; nil when missing.
func (s *RestStore) GetSocioEconomicByHousehold(ctx context.Context, householdID uint) (*models.SocioEconomic, error) {
	query := eq("household_id", householdID)
	query.Set("limit", "1")
	var rows []models.SocioEconomic
	if err := s.do(ctx, http.MethodGet, "socio_economic", query, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// 18. UpdateSocioEconomicByHousehold applies a partial update.
func (s *RestStore) UpdateSocioEconomicByHousehold(ctx context.Context, householdID uint, updates map[string]interface{}) error {
	return s.do(ctx, http.MethodPatch, "socio_economic", eq("household_id", householdID), updates, nil)
}

// participantRow mirrors the embedded-resource shape the table API
// returns for household-joined member queries.
type participantRow struct {
	MemberID           uint    `json:"member_id"`
	FullName           string  `json:"full_name"`
	Role               string  `json:"role"`
	RelationToHeadCode *string `json:"relation_to_head_code"`
	SexCode            *string `json:"sex_code"`
	Age                *int    `json:"age"`
	Households         struct {
		PurokGimong  *string `json:"purok_gimong"`
		BarangayName *string `json:"barangay_name"`
		Municipality *string `json:"municipality"`
		ParishName   *string `json:"parish_name"`
	} `json:"households"`
}

func (s *RestStore) participantQuery(tenant Tenant) url.Values {
	query := url.Values{}
	query.Set("select", "member_id,full_name,role,relation_to_head_code,sex_code,age,"+
		"households!inner(purok_gimong,barangay_name,municipality,parish_name)")
	if tenant.Scoped() {
		query.Set("households.parish_name", "eq."+tenant.Parish)
	}
	query.Set("order", "full_name.asc")
	return query
}

func formatParticipants(rows []participantRow) []models.ParticipantSummary {
	results := make([]models.ParticipantSummary, 0, len(rows))
	for _, row := range rows {
		results = append(results, models.ParticipantSummary{
			ID:                 row.MemberID,
			FullName:           row.FullName,
			Role:               row.Role,
			RelationToHeadCode: row.RelationToHeadCode,
			SexCode:            row.SexCode,
			Age:                row.Age,
			PurokGimong:        row.Households.PurokGimong,
			BarangayName:       row.Households.BarangayName,
			Municipality:       row.Households.Municipality,
			ParishName:         row.Households.ParishName,
		})
	}
	return results
}

// 19. SearchParticipants runs a case-insensitive substring match on the
// full name, tenant-filtered, ordered by name.
func (s *RestStore) SearchParticipants(ctx context.Context, tenant Tenant, query string, limit int) ([]models.ParticipantSummary, error) {
	q := s.participantQuery(tenant)
	q.Set("full_name", "ilike.*"+query+"*")
	q.Set("limit", strconv.Itoa(limit))
	var rows []participantRow
	if err := s.do(ctx, http.MethodGet, "family_members", q, nil, &rows); err != nil {
		return nil, err
	}
	return formatParticipants(rows), nil
}

// 20. ListParticipants returns the full tenant-filtered roster.
func (s *RestStore) ListParticipants(ctx context.Context, tenant Tenant) ([]models.ParticipantSummary, error) {
	var rows []participantRow
	if err := s.do(ctx, http.MethodGet, "family_members", s.participantQuery(tenant), nil, &rows); err != nil {
		return nil, err
	}
	return formatParticipants(rows), nil
}

// 21. WithTransaction emulates a transaction boundary. Every insert
// made through the transaction-scoped store is journaled; when fn
// fails, the created rows are deleted in reverse order so no partial
// aggregate survives.
func (s *RestStore) WithTransaction(ctx context.Context, fn func(tx Store) error) error {
	if s.journal != nil {
		// Nested call; reuse the current journal.
		return fn(s)
	}
	tx := &RestStore{
		baseURL: s.baseURL,
		apiKey:  s.apiKey,
		client:  s.client,
		journal: &txJournal{},
	}
	if err := fn(tx); err != nil {
		tx.rollback(ctx)
		return err
	}
	return nil
}

func (s *RestStore) rollback(ctx context.Context) {
	for i := len(s.journal.entries) - 1; i >= 0; i-- {
		entry := s.journal.entries[i]
		if err := s.do(ctx, http.MethodDelete, entry.table, eq(entry.pkColumn, entry.id), nil, nil); err != nil {
			// Keep compensating the remaining rows.
			config.Error("rollback: failed to delete %s %d: %v", entry.table, entry.id, err)
		}
	}
}

// 22. Ping checks backend connectivity.
func (s *RestStore) Ping(ctx context.Context) error {
	query := url.Values{"select": []string{"username"}, "limit": []string{"1"}}
	var rows []struct {
		Username string `json:"username"`
	}
	return s.do(ctx, http.MethodGet, "users", query, nil, &rows)
}
