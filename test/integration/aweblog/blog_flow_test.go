// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

//go:build integration

package aweblog_test

import (
	"context"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
)

var _ = Describe("Blog entries", func() {
	var (
		ctx     context.Context
		session string
	)

	register := func(email, name, password string) string {
		resp, _, err := postJSON("/api/users", map[string]string{
			"email":  email,
			"name":   name,
			"passwd": clientDigest(email, password),
		}, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		return sessionCookie(resp)
	}

	createEntry := func(session, name string) map[string]any {
		resp, body, err := postJSON("/api/blogs", map[string]string{
			"name":    name,
			"summary": "summary of " + name,
			"content": "content of " + name,
		}, session)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		return body
	}

	BeforeEach(func() {
		ctx = context.Background()
		truncateTables(ctx)
		session = register("author@example.com", "Author", "write-stuff")
	})

	Describe("POST /api/blogs", func() {
		It("requires a session", func() {
			resp, _, err := postJSON("/api/blogs", map[string]string{
				"name": "x", "summary": "y", "content": "z",
			}, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		})

		It("rejects a tampered session token", func() {
			tampered := session[:len(session)-4] + "0000"
			resp, _, err := postJSON("/api/blogs", map[string]string{
				"name": "x", "summary": "y", "content": "z",
			}, tampered)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		})

		It("creates an entry stamped with the author", func() {
			body := createEntry(session, "Hello World")

			Expect(body["name"]).To(Equal("Hello World"))
			Expect(body["user_name"]).To(Equal("Author"))
			Expect(body["id"]).NotTo(BeEmpty())
		})

		It("rejects an empty title with 422", func() {
			resp, body, err := postJSON("/api/blogs", map[string]string{
				"name": "   ", "summary": "y", "content": "z",
			}, session)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusUnprocessableEntity))
			Expect(body["field"]).To(Equal("name"))
		})
	})

	Describe("GET /api/blogs", func() {
		It("returns entries newest first with pagination", func() {
			for i := 1; i <= 12; i++ {
				createEntry(session, fmt.Sprintf("Entry %02d", i))
			}

			resp, body, err := getJSON("/api/blogs", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			page := body["page"].(map[string]any)
			Expect(page["page_count"]).To(BeEquivalentTo(2))
			Expect(page["item_count"]).To(BeEquivalentTo(12))

			blogs := body["blogs"].([]any)
			Expect(blogs).To(HaveLen(10))
			Expect(blogs[0].(map[string]any)["name"]).To(Equal("Entry 12"))

			resp, body, err = getJSON("/api/blogs?page=2", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(body["blogs"].([]any)).To(HaveLen(2))
		})

		It("returns an empty page when there are no entries", func() {
			resp, body, err := getJSON("/api/blogs", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(body["blogs"]).To(BeEmpty())
		})
	})

	Describe("GET /api/blogs/{id}", func() {
		It("returns the full entry", func() {
			created := createEntry(session, "Readable")

			resp, body, err := getJSON("/api/blogs/"+created["id"].(string), "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(body["content"]).To(Equal("content of Readable"))
		})

		It("returns 404 for an unknown id", func() {
			resp, _, err := getJSON("/api/blogs/does-not-exist", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})
})
