// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format renders message bodies for the transcript.
//
// Messages arrive with a plain body and an optional formatted (markdown)
// body. The formatted body is rendered through Glamour; when it is absent or
// fails to render, the plain body is used unchanged. The package also carries
// the text transforms redaction needs: ANSI stripping and the combining
// long-stroke strikethrough.
package format
