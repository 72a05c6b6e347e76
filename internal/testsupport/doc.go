// Package testsupport holds fixtures shared by package tests: temp-rooted
// configs, stub pdftoppm and yt-dlp scripts, and generated PDF documents.
package testsupport
