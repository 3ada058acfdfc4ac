package validators

import "go.mongodb.org/mongo-driver/bson"

var TutorValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"name",
			"email",
			"subject",
			"location",
			"standard",
			"gender",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"phone": bson.M{
				"bsonType":  "string",
				"maxLength": 16,
			},

			"subject": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"location": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"languages": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"standard": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"fees": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"gender": bson.M{
				"bsonType": "string",
				"enum": []string{
					"male",
					"female",
					"other",
				},
			},

			"verified": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
