package component

// Dead marks an entity killed during the current tick. CleanupSystem destroys
// marked entities once every system has run.
type Dead struct{}

var DeadComponent = NewComponent[Dead]()

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
