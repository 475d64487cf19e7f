// Package composer holds the draft of a new task batch while it is being
// filled in: task details, tags, and the executors or segments the task
// is proposed to. Build turns a draft into a CreateBatchRequest for an
// injected BatchCreator.
package composer
