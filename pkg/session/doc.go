/*
Package session implements session management and persistence orchestration.

A Manager serializes access to each conversation: one turn loads the session,
runs the engine and saves the result while holding an in-process lock and,
when configured, a distributed lock shared across replicas.
*/
package session
