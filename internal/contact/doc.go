// Package contact stores and manages messages sent through the public
// contact form.
//
// Submissions are sanitized, validated and saved with status "novo". The
// inbox moves them through "lido", "respondido" and "arquivado" via
// UpdateStatus. Persistence is MongoDB, reached lazily through the shared
// connector, so every route is mounted behind the database gate.
package contact
