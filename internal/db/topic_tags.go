package db

import (
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// GetTopicTags returns the tags saved for a topic in the order they were added
func (db *DB) GetTopicTags(topicID string) ([]string, error) {
	rows, err := db.builder().
		Select("tag").
		From("topic_tags").
		Where(sq.Eq{"topic_id": topicID}).
		OrderBy("position").
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// ListAllTopicTags returns the saved tags of every topic, keyed by topic id
func (db *DB) ListAllTopicTags() (map[string][]string, error) {
	rows, err := db.builder().
		Select("topic_id", "tag").
		From("topic_tags").
		OrderBy("topic_id", "position").
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var topicID, tag string
		if err := rows.Scan(&topicID, &tag); err != nil {
			return nil, err
		}
		out[topicID] = append(out[topicID], tag)
	}
	return out, rows.Err()
}

// replaceTags rewrites a topic's tags. Blank and repeated tags are dropped.
func replaceTags(tx *sql.Tx, topicID string, tags []string) error {
	b := sq.StatementBuilder.RunWith(tx)
	if _, err := b.Delete("topic_tags").Where(sq.Eq{"topic_id": topicID}).Exec(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(tags))
	insert := b.Insert("topic_tags").Columns("topic_id", "tag", "position")
	n := 0
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		insert = insert.Values(topicID, tag, n)
		n++
	}
	if n == 0 {
		return nil
	}
	_, err := insert.Exec()
	return err
}
