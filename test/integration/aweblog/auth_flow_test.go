// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

//go:build integration

package aweblog_test

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
)

var _ = Describe("Registration and sign-in", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		truncateTables(ctx)
	})

	Describe("POST /api/users", func() {
		It("registers a user and starts a session", func() {
			resp, body, err := postJSON("/api/users", map[string]string{
				"email":  "alice@example.com",
				"name":   "Alice",
				"passwd": clientDigest("alice@example.com", "s3cret-pass"),
			}, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			Expect(body["email"]).To(Equal("alice@example.com"))
			Expect(body["name"]).To(Equal("Alice"))
			Expect(body["passwd"]).To(Equal("******"))
			Expect(body["image"]).To(ContainSubstring("gravatar.com/avatar/"))

			Expect(sessionCookie(resp)).NotTo(BeEmpty())
		})

		It("rejects a duplicate email with 409", func() {
			reg := map[string]string{
				"email":  "bob@example.com",
				"name":   "Bob",
				"passwd": clientDigest("bob@example.com", "s3cret-pass"),
			}

			resp, _, err := postJSON("/api/users", reg, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			resp, body, err := postJSON("/api/users", reg, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusConflict))
			Expect(body["field"]).To(Equal("email"))
		})

		It("rejects invalid input with 422 and names the field", func() {
			resp, body, err := postJSON("/api/users", map[string]string{
				"email":  "Not-An-Email",
				"name":   "Carol",
				"passwd": clientDigest("carol@example.com", "pw"),
			}, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusUnprocessableEntity))
			Expect(body["field"]).To(Equal("email"))
		})
	})

	Describe("POST /api/authenticate", func() {
		BeforeEach(func() {
			resp, _, err := postJSON("/api/users", map[string]string{
				"email":  "dave@example.com",
				"name":   "Dave",
				"passwd": clientDigest("dave@example.com", "correct-horse"),
			}, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
		})

		It("signs in with the right credentials", func() {
			resp, body, err := postJSON("/api/authenticate", map[string]string{
				"email":  "dave@example.com",
				"passwd": clientDigest("dave@example.com", "correct-horse"),
			}, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(body["passwd"]).To(Equal("******"))
			Expect(sessionCookie(resp)).NotTo(BeEmpty())
		})

		It("rejects a wrong password", func() {
			resp, body, err := postJSON("/api/authenticate", map[string]string{
				"email":  "dave@example.com",
				"passwd": clientDigest("dave@example.com", "wrong-password"),
			}, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusUnprocessableEntity))
			Expect(body["field"]).To(Equal("passwd"))
		})

		It("rejects an unknown email", func() {
			resp, body, err := postJSON("/api/authenticate", map[string]string{
				"email":  "nobody@example.com",
				"passwd": clientDigest("nobody@example.com", "whatever"),
			}, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusUnprocessableEntity))
			Expect(body["field"]).To(Equal("email"))
		})
	})

	Describe("GET /api/users", func() {
		It("lists users with redacted digests", func() {
			for _, u := range []string{"u1", "u2"} {
				email := u + "@example.com"
				resp, _, err := postJSON("/api/users", map[string]string{
					"email":  email,
					"name":   u,
					"passwd": clientDigest(email, "pw-"+u),
				}, "")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
			}

			resp, body, err := getJSON("/api/users", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			users, ok := body["users"].([]any)
			Expect(ok).To(BeTrue())
			Expect(users).To(HaveLen(2))
			for _, u := range users {
				Expect(u.(map[string]any)["passwd"]).To(Equal("******"))
			}
		})
	})
})
