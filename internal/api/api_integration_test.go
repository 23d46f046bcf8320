package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "instantshare/internal"
	"instantshare/internal/store"
)

// testApp is the global application instance for testing.
var testApp *app.Application

// testServer is the httptest server.
var testServer *httptest.Server

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "instantshare-api-test")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	os.Setenv("DATA_FILE", filepath.Join(dir, "data.json"))
	os.Setenv("MEDIA_DIR", filepath.Join(dir, "media"))

	testApp = app.NewApplication()
	if err := testApp.Initialize(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize test application: %v\n", err)
		os.Exit(1)
	}

	testServer = httptest.NewServer(testApp.HTTPHandler)
	defer testServer.Close()

	code := m.Run()

	if err := testApp.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown test application: %v\n", err)
		os.Exit(1)
	}

	os.Exit(code)
}

// newClient returns an HTTP client with its own cookie jar, i.e. one
// logged-in browser.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := client.Post(testServer.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, dest), "body: %s", data)
}

// signUp registers and logs a user in on a fresh client.
func signUp(t *testing.T, username string) *http.Client {
	t.Helper()
	client := newClient(t)

	resp := postJSON(t, client, "/register", map[string]string{"username": username, "password": "secret"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, client, "/login", map[string]string{"username": username, "password": "secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	return client
}

// postInstant uploads a small media file and returns the created instant id.
func postInstant(t *testing.T, client *http.Client, title string, exclusive bool) string {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", title))
	require.NoError(t, mw.WriteField("exclusive", fmt.Sprintf("%t", exclusive)))
	fw, err := mw.CreateFormFile("media", "photo.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := client.Post(testServer.URL+"/instants", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.ID)
	return created.ID
}

// fundUser sets a user's balance directly in the store; the HTTP surface
// has no faucet beyond the daily check-in.
func fundUser(t *testing.T, username string, credits int) {
	t.Helper()
	err := testApp.Store.Update(func(tx *store.Tx) error {
		u, err := tx.UserByUsername(username)
		if err != nil {
			return err
		}
		u.Credits = credits
		tx.MarkDirty()
		return nil
	})
	require.NoError(t, err)
}

func TestHealth(t *testing.T) {
	resp, err := http.Get(testServer.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWall_RequiresSession(t *testing.T) {
	resp, err := http.Get(testServer.URL + "/instants")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegister_Duplicate(t *testing.T) {
	signUp(t, "dupe")

	resp := postJSON(t, newClient(t), "/register", map[string]string{"username": "dupe", "password": "secret"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin_WrongPassword(t *testing.T) {
	signUp(t, "carol")

	resp := postJSON(t, newClient(t), "/login", map[string]string{"username": "carol", "password": "nope"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Full flow: creator posts, buyer sees the wall, purchases once, is
// rejected on the second attempt, and shows up as the creator's top fan.
func TestPostAndPurchaseFlow(t *testing.T) {
	creator := signUp(t, "creator")
	buyer := signUp(t, "buyer")

	instantID := postInstant(t, creator, "my instant", false)

	// The wall shows the active instant to the buyer.
	resp, err := buyer.Get(testServer.URL + "/instants")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var wall struct {
		Instants []struct {
			ID    string `json:"id"`
			Price int    `json:"price"`
		} `json:"instants"`
	}
	decodeBody(t, resp, &wall)
	require.NotEmpty(t, wall.Instants)

	// Purchase deducts the shared price from the starting credits.
	resp = postJSON(t, buyer, "/instants/"+instantID+"/purchase", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var purchase struct {
		NewBalance int `json:"new_balance"`
	}
	decodeBody(t, resp, &purchase)
	assert.Equal(t, 15, purchase.NewBalance)

	// Second attempt is rejected and changes nothing.
	resp = postJSON(t, buyer, "/instants/"+instantID+"/purchase", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Self-purchase is rejected.
	resp = postJSON(t, creator, "/instants/"+instantID+"/purchase", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// The buyer's own record reflects the unlock.
	resp, err = buyer.Get(testServer.URL + "/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me struct {
		Credits           int      `json:"credits"`
		InstantsPurchased []string `json:"instants_purchased"`
	}
	decodeBody(t, resp, &me)
	assert.Equal(t, 15, me.Credits)
	assert.Contains(t, me.InstantsPurchased, instantID)

	// The creator's profile ranks the buyer as top fan.
	resp, err = buyer.Get(testServer.URL + "/users/creator")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile struct {
		TopFans []struct {
			FanID        string `json:"fan_id"`
			TotalCredits int    `json:"total_credits"`
		} `json:"top_fans"`
	}
	decodeBody(t, resp, &profile)
	require.Len(t, profile.TopFans, 1)
	assert.Equal(t, 5, profile.TopFans[0].TotalCredits)

	// Media is viewable while the instant is active.
	resp, err = buyer.Get(testServer.URL + "/instants/" + instantID + "/media")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPurchase_InsufficientCredits(t *testing.T) {
	creator := signUp(t, "rich-creator")
	buyer := signUp(t, "poor-buyer")

	instantID := postInstant(t, creator, "pricey", true)

	// Starting credits (20) cannot cover the exclusive price (50).
	resp := postJSON(t, buyer, "/instants/"+instantID+"/purchase", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
}

func TestExclusive_SecondBuyerLockedOut(t *testing.T) {
	creator := signUp(t, "excl-creator")
	first := signUp(t, "excl-first")
	second := signUp(t, "excl-second")

	instantID := postInstant(t, creator, "one of one", true)

	fundUser(t, "excl-first", 60)
	fundUser(t, "excl-second", 60)

	resp := postJSON(t, first, "/instants/"+instantID+"/purchase", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, second, "/instants/"+instantID+"/purchase", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCheckIn_GrantsOncePerDay(t *testing.T) {
	client := signUp(t, "daily")

	resp := postJSON(t, client, "/checkin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var first struct {
		Credits int `json:"credits"`
	}
	decodeBody(t, resp, &first)
	assert.Equal(t, 23, first.Credits)

	// Same window: no further grant.
	resp = postJSON(t, client, "/checkin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var again struct {
		Credits int `json:"credits"`
	}
	decodeBody(t, resp, &again)
	assert.Equal(t, 23, again.Credits)
}

func TestLogout(t *testing.T) {
	client := signUp(t, "leaver")

	resp := postJSON(t, client, "/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := client.Get(testServer.URL + "/me")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
