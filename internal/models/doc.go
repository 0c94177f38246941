// package models defines the data model for the course tracker.
//
// A Course is an ordered collection of Lessons; a Lesson is a single
// trackable video with completion, skip, resume-position, and note state.
// The SessionPointer identifies the globally-current (course, lesson) pair.
//
// All types are plain JSON-serializable documents: the store persists the
// whole course collection as one record, so models carry no database
// concerns of their own.
package models
