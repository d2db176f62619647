package commands_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendatateam/ucli/internal/commands"
	"github.com/opendatateam/ucli/internal/lib"
)

func transferAPI() *fakeAPI {
	api := newFakeAPI()
	api.reply("GET /me", http.StatusOK, `{"id": "me", "first_name": "Joe", "last_name": "User", "organizations": [{"id": "o5", "name": "My Org"}]}`)
	api.reply("GET /organizations/suggest/", http.StatusOK, `[{"id": "o1", "name": "Org One"}]`)
	api.routes["GET /datasets/"] = func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("page_size") != "1000" || r.Header.Get("X-Fields") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case query.Get("owner") == "me":
			_, _ = w.Write([]byte(`{"data": [
				{"id": "d1", "title": "One", "organization": {"id": "o1", "name": "Org One"}},
				{"id": "d2", "title": "Two"}
			], "total": 5}`))
		case query.Get("organization") == "o5":
			_, _ = w.Write([]byte(`{"data": [{"id": "d3", "title": "Three"}], "total": 1}`))
		default:
			_, _ = w.Write([]byte(`{"data": [], "total": 0}`))
		}
	}
	api.reply("POST /transfer/", http.StatusCreated, `{"id": "t1"}`)
	api.reply("POST /transfer/t1/", http.StatusOK,
		`{"id": "t1", "subject": {"class": "Dataset", "id": "d2"}, "recipient": {"class": "Organization", "id": "o1"}}`)
	return api
}

func TestTransfer_FromMineToOrganization(t *testing.T) {
	api := transferAPI()
	// Dataset, Mine, An Organization, query, first suggestion, reason, confirm
	env := newTestEnv(t, api, "1\n1\n2\norg\n1\nTeam change\ny\n")

	summary, err := commands.Transfer(context.Background(), env.Env)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total, "the total is the number of fetched items")
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Transferred)
	assert.Equal(t, 1, api.count("POST /transfer/"))

	assert.Contains(t, env.stdout(), "Massive datasets or reuses transfer")
	assert.NotContains(t, env.stdout(), "Any user", "only admins may transfer from anyone")
	assert.Contains(t, env.stdout(), `Will transfer all datasets (2) from your user to "Org One" organization.`)
	assert.Contains(t, env.stdout(), "The transfer reason is: Team change")
	assert.Contains(t, env.stderr(), "Only the first 2 of 5 datasets will be transferred")
	assert.Contains(t, env.stdout(), "Transferring Dataset(d2)")
	assert.Contains(t, env.stdout(), "Dataset(d2) transferred to Organization(o1)")
	assert.Contains(t, env.stdout(), "Transferred 2 item(s)")
}

func TestTransfer_FromMyOrganization(t *testing.T) {
	api := transferAPI()
	// Dataset, My organizations, My Org, An Organization, query, first suggestion, reason, confirm
	env := newTestEnv(t, api, "1\n2\n1\n2\norg\n\nMerge\ny\n")

	summary, err := commands.Transfer(context.Background(), env.Env)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Transferred)
	assert.Contains(t, env.stdout(), `from "My Org" organization`)
}

func TestTransfer_NoOrganization(t *testing.T) {
	api := transferAPI()
	api.reply("GET /me", http.StatusOK, `{"id": "me", "first_name": "Joe", "last_name": "User"}`)
	env := newTestEnv(t, api, "1\n2\n")

	_, err := commands.Transfer(context.Background(), env.Env)

	require.Error(t, err)
	assert.Equal(t, lib.CategoryInput, lib.ClassifyError(err).Category)
}

func TestTransfer_Declined(t *testing.T) {
	api := transferAPI()
	env := newTestEnv(t, api, "1\n1\n2\norg\n1\nTeam change\nn\n")

	_, err := commands.Transfer(context.Background(), env.Env)

	assert.ErrorIs(t, err, lib.ErrAborted)
	assert.Equal(t, 0, api.count("POST /transfer/"))
}

func TestTransfer_MeFailureIsFatal(t *testing.T) {
	api := newFakeAPI()
	api.reply("GET /me", http.StatusUnauthorized, `{"message": "Invalid API Key"}`)
	env := newTestEnv(t, api, "")

	_, err := commands.Transfer(context.Background(), env.Env)

	require.Error(t, err)
	cliErr := lib.ClassifyError(err)
	assert.Equal(t, http.StatusUnauthorized, cliErr.HTTPStatus)
	assert.Equal(t, "Invalid API Key", cliErr.Details)
}

func adminTransferAPI(queries *[]string, acceptStatus int) *fakeAPI {
	api := newFakeAPI()
	api.reply("GET /me", http.StatusOK, `{"id": "me", "first_name": "Ada", "last_name": "Admin", "roles": ["admin"]}`)
	api.reply("GET /users/suggest/", http.StatusOK, `[
		{"id": "u7", "first_name": "Jane", "last_name": "Doe"},
		{"id": "u8", "first_name": "John", "last_name": "Roe"}
	]`)
	api.reply("GET /organizations/suggest/", http.StatusOK, `[
		{"id": "o1", "name": "Org One"},
		{"id": "o2", "name": "Org Two"}
	]`)
	api.routes["GET /datasets/"] = func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		*queries = append(*queries, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case query.Get("owner") == "u7":
			// d1 belongs to an organization sharing the target user's identifier
			_, _ = w.Write([]byte(`{"data": [
				{"id": "d1", "title": "One", "organization": {"id": "u8", "name": "Twin"}},
				{"id": "d2", "title": "Two"}
			], "total": 2}`))
		case query.Get("organization") == "o1":
			_, _ = w.Write([]byte(`{"data": [
				{"id": "d3", "title": "Three", "organization": {"id": "o1", "name": "Org One"}},
				{"id": "d4", "title": "Four", "organization": {"id": "o2", "name": "Org Two"}}
			], "total": 2}`))
		default:
			_, _ = w.Write([]byte(`{"data": [], "total": 0}`))
		}
	}
	api.reply("POST /transfer/", http.StatusCreated, `{"id": "t1"}`)
	if acceptStatus == http.StatusOK {
		api.reply("POST /transfer/t1/", http.StatusOK,
			`{"id": "t1", "subject": {"class": "Dataset", "id": "d2"}, "recipient": {"class": "User", "id": "u8"}}`)
	} else {
		api.reply("POST /transfer/t1/", acceptStatus, `{"message": "You can not accept this transfer"}`)
	}
	return api
}

func TestTransfer_Paths(t *testing.T) {
	testCases := []struct {
		name         string
		input        string
		acceptStatus int
		expected     commands.TransferSummary
		query        string
		stdout       []string
		stderr       []string
	}{
		{
			name: "any user to a user is never ownership-skipped",
			// Dataset, Any user, query, Jane, An user, query, John, reason, confirm
			input:        "1\n3\ndoe\n1\n1\nroe\n2\nHandover\ny\n",
			acceptStatus: http.StatusOK,
			expected:     commands.TransferSummary{Total: 2, Transferred: 2},
			query:        "owner=u7",
			stdout: []string{
				`Will transfer all datasets (2) from "Jane Doe" user to "John Roe" user.`,
				"Transferring Dataset(d1)",
				"Transferred 2 item(s)",
			},
		},
		{
			name: "any organization to an organization",
			// Dataset, Any organization, query, Org One, An Organization, query, Org Two, reason, confirm
			input:        "1\n4\norg\n1\n2\norg\n2\nMerge\ny\n",
			acceptStatus: http.StatusOK,
			expected:     commands.TransferSummary{Total: 2, Transferred: 1, Skipped: 1},
			query:        "organization=o1",
			stdout: []string{
				`from "Org One" organization to "Org Two" organization`,
				`Skipping dataset Four (d4) as "Org Two" organization is already the owner`,
				"Transferred 2 item(s)",
			},
		},
		{
			name:         "refused acceptance keeps going and keeps the fetched total",
			input:        "1\n3\ndoe\n1\n1\nroe\n2\nHandover\ny\n",
			acceptStatus: http.StatusForbidden,
			expected:     commands.TransferSummary{Total: 2, Pending: 2},
			query:        "owner=u7",
			stdout:       []string{"Transferred 2 item(s)"},
			stderr: []string{
				`Unable to complete dataset One (d1) transfer to "John Roe" user: You can not accept this transfer`,
				`Unable to complete dataset Two (d2) transfer to "John Roe" user: You can not accept this transfer`,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var queries []string
			api := adminTransferAPI(&queries, tc.acceptStatus)
			env := newTestEnv(t, api, tc.input)

			summary, err := commands.Transfer(context.Background(), env.Env)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, *summary)
			require.Len(t, queries, 1)
			assert.Contains(t, queries[0], tc.query)
			assert.Contains(t, env.stdout(), "Any user", "admins may transfer from anyone")
			for _, s := range tc.stdout {
				assert.Contains(t, env.stdout(), s)
			}
			for _, s := range tc.stderr {
				assert.Contains(t, env.stderr(), s)
			}
		})
	}
}
