package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"tutor_id",
			"student_id",
			"subject",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"tutor_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"student_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"subject": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			// Slot fields stay strings so a record can exist without one;
			// an empty or absent value means no slot has been proposed.
			"date": bson.M{
				"bsonType":  "string",
				"maxLength": 10,
			},

			"time": bson.M{
				"bsonType":  "string",
				"maxLength": 5,
			},

			"message": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"accepted",
					"rejected",
					"completed",
				},
			},

			"reject_reason": bson.M{
				"bsonType":  "string",
				"maxLength": 1000,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
