package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// ----------------------------------------------------------------------------
// Config ---------------------------------------------------------------------
var (
	baseURL   = flag.String("url", env("API_BASE_URL", "http://localhost:5000"), "Server base URL")
	nPatients = flag.Int("patients", envInt("PATIENTS", 25), "How many patients to register")
	nDoctors  = flag.Int("doctors", envInt("DOCTORS", 3), "How many doctors to register")
	pass      = flag.String("pass", env("PASSWORD", "Password123"), "Password for every seeded account")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscan(v, &i); err == nil && i > 0 {
			return i
		}
	}
	return def
}

// ----------------------------------------------------------------------------
// HTTP helpers ---------------------------------------------------------------
func postJSON(path string, body any) (*http.Response, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, *baseURL+path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return http.DefaultClient.Do(req)
}

func must(body io.ReadCloser) []byte {
	defer body.Close()
	data, _ := io.ReadAll(body)
	return data
}

// ----------------------------------------------------------------------------
// Main -----------------------------------------------------------------------
func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	fmt.Printf("Seeding %d doctors and %d patients on %s\n", *nDoctors, *nPatients, *baseURL)

	for i := 0; i < *nDoctors; i++ {
		if err := registerUser("doctor"); err != nil {
			fmt.Fprintln(os.Stderr, "FATAL:", err)
			os.Exit(1)
		}
	}
	for i := 0; i < *nPatients; i++ {
		if err := registerUser("patient"); err != nil {
			fmt.Fprintln(os.Stderr, "FATAL:", err)
			os.Exit(1)
		}
	}

	fmt.Println("✔ done")
}

func registerUser(role string) error {
	payload := map[string]string{
		"name":     gofakeit.Name(),
		"email":    gofakeit.Email(),
		"password": *pass,
		"phone":    gofakeit.Phone(),
		"role":     role,
	}
	if role == "patient" {
		payload["disease_description"] = gofakeit.Sentence(8)
	}

	resp, err := postJSON("/api/register", payload)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("register %s failed (%d): %s", role, resp.StatusCode, must(resp.Body))
	}

	var r struct {
		User struct {
			Email              string `json:"email"`
			RegistrationNumber string `json:"registration_number"`
		} `json:"user"`
	}
	_ = json.Unmarshal(must(resp.Body), &r)
	fmt.Printf("• %s %s (%s)\n", role, r.User.Email, r.User.RegistrationNumber)
	return nil
}
