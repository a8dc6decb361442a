package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableKV       = "kv_entries"
	tableAnswers  = "answer_events"
	tableSessions = "session_events"
	tableLLM      = "llm_request_events"
	tableSequence = "global_sequence"
	colID         = "id"
	colSequence   = "sequence"
	colTimestamp  = "timestamp"
	colNamespace  = "namespace"
	colKey        = "key"
	colValue      = "value"
	colUpdatedAt  = "updated_at"
	colSessionID  = "session_id"
	colTier       = "tier"
	colCorrect    = "correct"
	colNextVal    = "next_val"
)

// eventColumns are shared by every event table: a local id, the global
// sequence and the unix-millisecond timestamp.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeInt64},
	}
}

var (
	kvColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colNamespace, Type: field.TypeString},
		{Name: colKey, Type: field.TypeString},
		{Name: colValue, Type: field.TypeString, Size: 2147483647},
		{Name: colUpdatedAt, Type: field.TypeInt64},
	}
	kvTable = &schema.Table{
		Name:       tableKV,
		Columns:    kvColumns,
		PrimaryKey: []*schema.Column{kvColumns[0]},
		Indexes: []*schema.Index{
			{Name: "kventry_namespace_key", Unique: true, Columns: []*schema.Column{kvColumns[1], kvColumns[2]}},
		},
	}

	sessionColumns = append(eventColumns(),
		&schema.Column{Name: colSessionID, Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: colTier, Type: field.TypeString},
		&schema.Column{Name: "section", Type: field.TypeInt},
		&schema.Column{Name: "questions_served", Type: field.TypeInt},
		&schema.Column{Name: "correct_answers", Type: field.TypeInt},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt},
	)
	sessionTable = &schema.Table{
		Name:       tableSessions,
		Columns:    sessionColumns,
		PrimaryKey: []*schema.Column{sessionColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{sessionColumns[3]}},
		},
	}

	answerColumns = append(eventColumns(),
		&schema.Column{Name: colSessionID, Type: field.TypeString},
		&schema.Column{Name: "question_id", Type: field.TypeInt},
		&schema.Column{Name: colTier, Type: field.TypeString},
		&schema.Column{Name: "section", Type: field.TypeInt},
		&schema.Column{Name: "question_text", Type: field.TypeString, Size: 2147483647},
		&schema.Column{Name: "correct_answer", Type: field.TypeString},
		&schema.Column{Name: "chosen_answer", Type: field.TypeString},
		&schema.Column{Name: colCorrect, Type: field.TypeBool},
		&schema.Column{Name: "time_ms", Type: field.TypeInt64},
	)
	answerTable = &schema.Table{
		Name:       tableAnswers,
		Columns:    answerColumns,
		PrimaryKey: []*schema.Column{answerColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{answerColumns[3]}},
			{Name: "answerevent_tier", Columns: []*schema.Column{answerColumns[5]}},
		},
	}

	llmColumns = append(eventColumns(),
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Nullable: true},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Nullable: true},
	)
	llmTable = &schema.Table{
		Name:       tableLLM,
		Columns:    llmColumns,
		PrimaryKey: []*schema.Column{llmColumns[0]},
	}

	sequenceColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt},
		{Name: colNextVal, Type: field.TypeInt64},
	}
	sequenceTable = &schema.Table{
		Name:       tableSequence,
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
	}

	// tables lists every table Open migrates.
	tables = []*schema.Table{kvTable, sessionTable, answerTable, llmTable, sequenceTable}
)
